// cmd/imageserver/main.go
// 本地图片目录服务器 - PhotoDrift 的开发配套工具
//
// 提供三件事：静态文件服务（自动目录索引正好喂给目录列表回退策略）、
// 示例图片生成（--seed）、清单再生成（--manifest）。
//
// 用法：
//
//	go run ./cmd/imageserver --dir ./photos --seed 12 --manifest
//	go run ./cmd/imageserver --dir ./photos --addr :8090
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"
)

var (
	dir          = flag.String("dir", "./photos", "图片目录")
	addr         = flag.String("addr", ":8090", "监听地址")
	seed         = flag.Int("seed", 0, "生成 N 张示例图片后再启动")
	manifestFlag = flag.Bool("manifest", false, "（重新）生成 photos.json 清单")
	serveFlag    = flag.Bool("serve", true, "生成完成后启动 HTTP 服务")
)

// imageExtensions 清单收录的图片扩展名
var imageExtensions = map[string]bool{
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".gif":      true,
	".webp":     true,
	".bmp":      true,
	".aseprite": true,
	".ase":      true,
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("创建图片目录失败: %v", err)
	}

	if *seed > 0 {
		if err := seedImages(*dir, *seed); err != nil {
			log.Fatalf("生成示例图片失败: %v", err)
		}
	}

	if *manifestFlag {
		if err := writeManifest(*dir); err != nil {
			log.Fatalf("生成清单失败: %v", err)
		}
	}

	if !*serveFlag {
		return
	}

	if err := serve(*dir, *addr); err != nil {
		log.Fatal(err)
	}
}

// seedImages 往目录里生成 n 张二维码示例图片
func seedImages(dir string, n int) error {
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("sample_%02d.png", i)
		path := filepath.Join(dir, name)
		label := fmt.Sprintf("photodrift sample #%d", i)
		if err := qrcode.WriteFile(label, qrcode.Medium, 512, path); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", name, err)
		}
	}
	log.Printf("✓ 生成 %d 张示例图片到 %s", n, dir)
	return nil
}

// writeManifest 扫描目录并写出 photos.json
// 清单顺序按文件名排序，作为权威的播放顺序
func writeManifest(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("读取目录失败: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化清单失败: %w", err)
	}

	path := filepath.Join(dir, "photos.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入清单失败: %w", err)
	}

	log.Printf("✓ 清单已写入 %s (%d 个条目)", path, len(names))
	return nil
}

// serve 启动静态服务，收到中断信号后优雅关停
func serve(dir, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/photos/", http.StripPrefix("/photos/", noCache(http.FileServer(http.Dir(dir)))))

	server := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("✓ 服务启动: http://localhost%s/photos/", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("收到退出信号，关停服务...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// noCache 给所有响应加禁缓存头，配合客户端的清单刷新语义
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store")
		next.ServeHTTP(w, r)
	})
}
