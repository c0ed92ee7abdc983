package main

import (
    "context"
    "flag"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "yuvsnap/internal/capture"
    "yuvsnap/internal/config"
    "yuvsnap/internal/server"
    "yuvsnap/internal/snapshot"
    "yuvsnap/internal/version"
    "yuvsnap/internal/yuv"
)

func main() {
    configPath := flag.String("config", os.Getenv("YUVSNAP_CONFIG"), "optional YAML config file")
    cfg := config.FromEnv(config.Default())
    flag.StringVar(&cfg.Host, "host", cfg.Host, "bind host")
    flag.IntVar(&cfg.Port, "port", cfg.Port, "bind port")
    flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "synthetic capture fps")
    flag.IntVar(&cfg.Width, "width", cfg.Width, "synthetic capture width")
    flag.IntVar(&cfg.Height, "height", cfg.Height, "synthetic capture height")
    flag.IntVar(&cfg.Padding, "padding", cfg.Padding, "row padding of captured planes, in bytes")
    flag.IntVar(&cfg.Rotation, "rotation", cfg.Rotation, "rotation hint of captured frames (0, 90, 180, 270)")
    flag.IntVar(&cfg.Quality, "quality", cfg.Quality, "JPEG quality (1-100)")
    flag.IntVar(&cfg.Keep, "keep", cfg.Keep, "snapshots kept in memory")
    flag.Parse()
    if *configPath != "" {
        c, err := config.Load(*configPath)
        if err != nil {
            log.Fatalf("config: %v", err)
        }
        // env overrides the file, explicit flags override both
        cfg = config.FromEnv(c)
        _ = flag.CommandLine.Parse(os.Args[1:])
    }
    if err := cfg.Validate(); err != nil {
        log.Fatalf("config: %v", err)
    }
    log.Printf("%s, conversion backend %s", version.String(), yuv.ConversionImpl())

    renderer := snapshot.NewRenderer(cfg.Quality)
    sink := snapshot.NewSink(cfg.Quality)
    snaps := server.NewSnapshotServer(server.Config{}, renderer, sink, snapshot.NewStore(cfg.Keep))

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    capturer := capture.NewSynthetic(capture.SyntheticConfig{
        Width:    cfg.Width,
        Height:   cfg.Height,
        FPS:      cfg.FPS,
        Padding:  cfg.Padding,
        Rotation: cfg.Rotation,
    })
    if err := capturer.Start(ctx, capture.Fanout{renderer, sink}); err != nil {
        log.Fatalf("capture: %v", err)
    }

    mux := http.NewServeMux()
    snaps.RegisterRoutes(mux)
    srv := &http.Server{
        Addr:              cfg.Addr(),
        Handler:           mux,
        ReadHeaderTimeout: 10 * time.Second,
    }
    go func() {
        log.Printf("snapshot server listening on http://%s\n", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("ListenAndServe: %v", err)
        }
    }()

    sig := make(chan os.Signal, 1)
    signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
    <-sig
    log.Printf("shutting down")
    capturer.Stop()
    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer shutdownCancel()
    _ = srv.Shutdown(shutdownCtx)
    snaps.Close()
}
