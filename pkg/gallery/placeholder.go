package gallery

import (
	"fmt"
	"log"

	qrcode "github.com/skip2/go-qrcode"
)

// Placeholders 生成一批占位缩略图
//
// 一张图都没加载到时（服务不可达、目录为空）动画仍要有可见内容，
// 用二维码方块当占位图：成本低、纹理丰富、肉眼一眼能认出是占位。
// 每个码编码一个短标签，扫出来能看到自己是第几号。
func Placeholders(count, size int) []Decoded {
	if count <= 0 {
		return nil
	}
	if size <= 0 {
		size = 96
	}

	out := make([]Decoded, 0, count)
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("photodrift placeholder #%d", i+1)
		q, err := qrcode.New(label, qrcode.Medium)
		if err != nil {
			log.Printf("[Placeholder] 生成占位图 %d 失败: %v", i+1, err)
			continue
		}
		out = append(out, Decoded{
			Src:      q.Image(size),
			Location: fmt.Sprintf("placeholder://%d", i+1),
		})
	}

	log.Printf("[Placeholder] ✓ 生成 %d 张占位图", len(out))
	return out
}
