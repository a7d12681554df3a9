package filter

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
)

// responseRecorder wraps the ResponseWriter handed to the next handler and
// records status code and body size for decorators. Fields are atomic
// because asynchronous completions read them from a goroutine other than the
// one the handler wrote from.
type responseRecorder struct {
	http.ResponseWriter
	status      atomic.Int32
	bytes       atomic.Int64
	wroteHeader atomic.Bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w}
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.wroteHeader.CompareAndSwap(false, true) {
		w.status.Store(int32(code))
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	// An implicit 200 the same way net/http applies one.
	if w.wroteHeader.CompareAndSwap(false, true) {
		w.status.Store(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes.Add(int64(n))
	return n, err
}

// Flush passes through to the underlying writer when it supports streaming.
func (w *responseRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack passes through to the underlying writer so protocol upgrades
// (websockets) keep working behind the traced chain. After a hijack the
// recorder no longer sees what goes over the wire.
func (w *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, errors.New("response writer does not support hijacking")
}

// writerOnly hides the recorder's ReadFrom from io.Copy so the fallback path
// goes through Write instead of recursing.
type writerOnly struct {
	io.Writer
}

// ReadFrom passes through to the underlying writer's io.ReaderFrom when it
// has one, keeping the sendfile fast path for handlers using ServeContent or
// ServeFile, while still counting status and bytes.
func (w *responseRecorder) ReadFrom(src io.Reader) (int64, error) {
	rf, ok := w.ResponseWriter.(io.ReaderFrom)
	if !ok {
		return io.Copy(writerOnly{w}, src)
	}
	if w.wroteHeader.CompareAndSwap(false, true) {
		w.status.Store(http.StatusOK)
	}
	n, err := rf.ReadFrom(src)
	w.bytes.Add(n)
	return n, err
}

// Status implements ResponseInfo. Returns 0 until something was written.
func (w *responseRecorder) Status() int {
	return int(w.status.Load())
}

// BytesWritten implements ResponseInfo.
func (w *responseRecorder) BytesWritten() int64 {
	return w.bytes.Load()
}
