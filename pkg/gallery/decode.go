package gallery

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	xdraw "golang.org/x/image/draw"

	// 解码链支持的位图格式，按 image.RegisterFormat 机制注册
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/askeladdk/aseprite"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// decodeImage 把一段原始字节解码为位图，按能力逐级降级：
//
//  1. 带缩放提示解码：标准解码后用 CatmullRom 高质量缩小到缩略图尺寸；
//  2. 无提示解码：保留原尺寸，由渲染循环在绘制时缩放；
//  3. 通用兜底：字节落到临时文件走 ebitenutil 的文件解码原语，
//     无论成败临时文件立即删除，避免反复运行堆积临时资源。
//
// 任一级成功即返回；全部失败返回最后一级的错误。
func decodeImage(data []byte, thumbSize int) (image.Image, error) {
	if img, err := decodeWithHint(data, thumbSize); err == nil {
		return img, nil
	}

	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return decodeViaTempFile(data)
}

// decodeWithHint 解码并缩小到目标缩略图尺寸（长边 = thumbSize）
func decodeWithHint(data []byte, thumbSize int) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if thumbSize <= 0 {
		return src, nil
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= thumbSize && h <= thumbSize {
		// 已经不大于目标尺寸，不放大
		return src, nil
	}

	// 等比缩放，长边对齐 thumbSize
	var tw, th int
	if w >= h {
		tw = thumbSize
		th = h * thumbSize / w
	} else {
		th = thumbSize
		tw = w * thumbSize / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst, nil
}

// decodeViaTempFile 通用解码兜底
// 注意 *ebiten.Image 会触碰 GPU，只在真实运行环境里走到这一级
func decodeViaTempFile(data []byte) (image.Image, error) {
	tmp, err := os.CreateTemp("", "photodrift_*.img")
	if err != nil {
		return nil, fmt.Errorf("创建临时文件失败: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("关闭临时文件失败: %w", err)
	}

	img, _, err := ebitenutil.NewImageFromFile(name)
	if err != nil {
		return nil, fmt.Errorf("通用解码失败: %w", err)
	}
	return img, nil
}
