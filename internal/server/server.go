package server

import (
    "context"
    "encoding/json"
    "errors"
    "io"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/gorilla/websocket"
    "github.com/pion/webrtc/v3/pkg/media"

    "yuvsnap/internal/snapshot"
    "yuvsnap/internal/stream"
    "yuvsnap/internal/version"
    "yuvsnap/internal/yuv"
)

type Config struct {
    // NextTimeout bounds how long POST /snapshot/next waits for a frame.
    NextTimeout time.Duration
}

type SnapshotServer struct {
    cfg      Config
    renderer *snapshot.Renderer
    sink     *snapshot.Sink
    store    *snapshot.Store
    subs     *stream.SampleBroadcaster
}

func NewSnapshotServer(cfg Config, r *snapshot.Renderer, sink *snapshot.Sink, store *snapshot.Store) *SnapshotServer {
    if cfg.NextTimeout <= 0 { cfg.NextTimeout = 5 * time.Second }
    return &SnapshotServer{
        cfg:      cfg,
        renderer: r,
        sink:     sink,
        store:    store,
        subs:     stream.NewSampleBroadcaster(),
    }
}

func (s *SnapshotServer) RegisterRoutes(mux *http.ServeMux) {
    mux.HandleFunc("/snapshot", s.handleSnapshot)
    mux.HandleFunc("/snapshot/", s.handleSnapshotResource)
    mux.HandleFunc("/ws", s.handleWebsocket)
    mux.Handle("/metrics", stream.MetricsHandler())
    mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(map[string]any{
            "status":      "ok",
            "version":     version.String(),
            "conversion":  yuv.ConversionImpl(),
            "counters":    stream.GetCounters(),
            "stored":      s.store.Len(),
            "subscribers": s.subs.Len(),
        })
    })
    mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/" { http.NotFound(w, r); return }
        io.WriteString(w, indexHTML)
    })
}

// Close disconnects all websocket subscribers.
func (s *SnapshotServer) Close() { s.subs.Close() }

// POST /snapshot -> picture of the last rendered frame
func (s *SnapshotServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
    allowCORS(w, r)
    if r.Method == http.MethodOptions { w.WriteHeader(http.StatusNoContent); return }
    if r.Method != http.MethodPost {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    p, err := s.renderer.Snapshot()
    if err != nil {
        writeSnapshotError(w, err)
        return
    }
    s.publish(p)
    writePicture(w, p)
}

// POST /snapshot/next -> picture of the next captured frame
// GET /snapshot/{id} -> image/jpeg
func (s *SnapshotServer) handleSnapshotResource(w http.ResponseWriter, r *http.Request) {
    allowCORS(w, r)
    if r.Method == http.MethodOptions { w.WriteHeader(http.StatusNoContent); return }
    id := r.URL.Path[len("/snapshot/"):]
    switch {
    case id == "next" && r.Method == http.MethodPost:
        ctx, cancel := context.WithTimeout(r.Context(), s.cfg.NextTimeout)
        defer cancel()
        p, err := s.sink.Next(ctx)
        if err != nil {
            writeSnapshotError(w, err)
            return
        }
        s.publish(p)
        writePicture(w, p)
    case r.Method == http.MethodGet:
        var p *snapshot.Picture
        var ok bool
        if id == "latest" {
            p, ok = s.store.Latest()
        } else {
            p, ok = s.store.Get(id)
        }
        if !ok {
            http.Error(w, "snapshot not found", http.StatusNotFound)
            return
        }
        w.Header().Set("Content-Type", "image/jpeg")
        w.Header().Set("Content-Length", strconv.Itoa(len(p.JPEG)))
        _, _ = w.Write(p.JPEG)
    default:
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
    }
}

func (s *SnapshotServer) publish(p *snapshot.Picture) {
    s.store.Put(p)
    _ = s.subs.WriteSample(media.Sample{Data: p.JPEG, Timestamp: p.Taken})
    log.Printf("snapshot %s: %dx%d rotation=%d (%d bytes)", p.ID, p.Width, p.Height, p.Rotation, len(p.JPEG))
}

func writePicture(w http.ResponseWriter, p *snapshot.Picture) {
    w.Header().Set("Content-Type", "application/json")
    w.Header().Set("Location", "/snapshot/"+p.ID)
    w.WriteHeader(http.StatusCreated)
    _ = json.NewEncoder(w).Encode(p)
}

func writeSnapshotError(w http.ResponseWriter, err error) {
    var le *yuv.LayoutError
    switch {
    case errors.Is(err, snapshot.ErrNoFrame):
        http.Error(w, err.Error(), http.StatusConflict)
    case errors.As(err, &le), errors.Is(err, snapshot.ErrInvalidRotation):
        http.Error(w, err.Error(), http.StatusUnprocessableEntity)
    case errors.Is(err, context.DeadlineExceeded):
        http.Error(w, "no frame arrived in time", http.StatusGatewayTimeout)
    default:
        log.Printf("snapshot failed: %v", err)
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}

var upgrader = websocket.Upgrader{
    CheckOrigin: func(req *http.Request) bool {
        return true
    },
}

// wsSubscriber pushes each snapshot as a text message with the capture time
// (RFC 3339) followed by one binary JPEG message.
type wsSubscriber struct {
    ws *websocket.Conn
}

func (c *wsSubscriber) WriteSample(sm media.Sample) error {
    if err := c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
        return err
    }
    if err := c.ws.WriteMessage(websocket.TextMessage, []byte(sm.Timestamp.UTC().Format(time.RFC3339Nano))); err != nil {
        return err
    }
    return c.ws.WriteMessage(websocket.BinaryMessage, sm.Data)
}

// GET /ws -> stream of JPEG snapshots
func (s *SnapshotServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
    ws, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        log.Printf("could not make websocket: %v", err)
        return
    }
    remove := s.subs.Add(&wsSubscriber{ws: ws})
    defer func() {
        remove()
        if err := ws.Close(); err != nil {
            log.Printf("could not close websocket: %v", err)
        }
    }()
    for {
        if _, _, err := ws.ReadMessage(); err != nil {
            return
        }
    }
}

func allowCORS(w http.ResponseWriter, r *http.Request) {
    origin := r.Header.Get("Origin")
    if origin == "" { origin = "*" }
    w.Header().Set("Access-Control-Allow-Origin", origin)
    w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
    w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

const indexHTML = `<!doctype html>
<meta charset="utf-8" />
<title>yuvsnap</title>
<style>body{font-family:system-ui;margin:2rem}img{max-width:80vw;background:#000}</style>
<div>
  <button id="last">Snapshot</button>
  <button id="next">Next frame</button>
  <div id="msg"></div>
</div>
<img id="img" />
<script>
const $=id=>document.getElementById(id);
const take=async ep=>{
  const resp=await fetch(ep,{method:'POST'});
  if(!resp.ok){$("msg").textContent=await resp.text();return}
  const p=await resp.json(); $("msg").textContent=p.id+" "+p.width+"x"+p.height;
}
$("last").onclick=()=>take('/snapshot');
$("next").onclick=()=>take('/snapshot/next');
const ws=new WebSocket((location.protocol==='https:'?'wss://':'ws://')+location.host+'/ws');
ws.binaryType='blob';
ws.onmessage=ev=>{if(typeof ev.data==='string'){$("msg").textContent="captured "+ev.data;return}const u=URL.createObjectURL(ev.data);const i=$("img");if(i.src)URL.revokeObjectURL(i.src);i.src=u;}
</script>`
