// internal/writer/writer_test.go
package writer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/tamzrod/brink-callerid/internal/calls"
	cfg "github.com/tamzrod/brink-callerid/internal/config"
	"github.com/tamzrod/brink-callerid/internal/lines"
	"github.com/tamzrod/brink-callerid/internal/writer/bridge"
	wserial "github.com/tamzrod/brink-callerid/internal/writer/serial"
)

// ---- fake transport ----

type fakeTransport struct {
	frames []string
	failOn map[int]error // send index -> error
}

func (f *fakeTransport) Send(frame []byte) error {
	i := len(f.frames)
	f.frames = append(f.frames, string(frame))
	if err, ok := f.failOn[i]; ok {
		return err
	}
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---- tests ----

func TestDeliver_FramesInOrder(t *testing.T) {
	tr := &fakeTransport{}
	w := New(tr, quiet())

	ds := w.Deliver(context.Background(), []lines.Action{
		{Kind: lines.Assign, Line: 1, Call: calls.Record{UniqueID: "1", CallerName: "Jo,e", CallerPhone: "5551234"}},
		{Kind: lines.Release, Line: 2, Call: calls.Record{UniqueID: "2"}},
	})

	if len(ds) != 2 || Failed(ds) != 0 {
		t.Fatalf("unexpected deliveries: %+v", ds)
	}
	if tr.frames[0] != "+1,5551234,Jo e,1\r\n" {
		t.Fatalf("assign frame: %q", tr.frames[0])
	}
	if tr.frames[1] != "+2,0,2\r\n" {
		t.Fatalf("release frame: %q", tr.frames[1])
	}
}

func TestDeliver_FailureDoesNotStopBatch(t *testing.T) {
	tr := &fakeTransport{failOn: map[int]error{0: errors.New("port busy")}}
	w := New(tr, quiet())

	ds := w.Deliver(context.Background(), []lines.Action{
		{Kind: lines.Release, Line: 1},
		{Kind: lines.Release, Line: 2},
		{Kind: lines.Release, Line: 3},
	})

	if len(tr.frames) != 3 {
		t.Fatalf("expected all 3 frames attempted, got %d", len(tr.frames))
	}
	if Failed(ds) != 1 || ds[0].Err == nil {
		t.Fatalf("expected exactly the first delivery to fail: %+v", ds)
	}
	if ds[1].Err != nil || ds[2].Err != nil {
		t.Fatalf("later deliveries failed: %+v", ds)
	}
}

func TestDeliver_EncodeFailureIsolated(t *testing.T) {
	tr := &fakeTransport{}
	w := New(tr, quiet())

	ds := w.Deliver(context.Background(), []lines.Action{
		{Kind: lines.Release, Line: 9}, // out of range, never sent
		{Kind: lines.Release, Line: 1},
	})

	if ds[0].Err == nil || ds[0].Frame != nil {
		t.Fatalf("expected encode failure: %+v", ds[0])
	}
	if len(tr.frames) != 1 || tr.frames[0] != "+2,0,1\r\n" {
		t.Fatalf("unexpected frames: %q", tr.frames)
	}
}

func TestClearAll_ReleasesEveryLine(t *testing.T) {
	tr := &fakeTransport{}
	w := New(tr, quiet())

	ds := w.ClearAll(context.Background(), lines.MaxLines)
	if Failed(ds) != 0 {
		t.Fatalf("unexpected failures")
	}

	want := []string{"+2,0,1\r\n", "+2,0,2\r\n", "+2,0,3\r\n", "+2,0,4\r\n"}
	if len(tr.frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(tr.frames))
	}
	for i := range want {
		if tr.frames[i] != want[i] {
			t.Fatalf("frame %d: got=%q want=%q", i, tr.frames[i], want[i])
		}
	}
}

func TestBuildTransport_SelectsByPort(t *testing.T) {
	tr, err := BuildTransport(cfg.SerialConfig{Port: "tcp://127.0.0.1:4001", TimeoutMs: 100})
	if err != nil {
		t.Fatalf("bridge build err=%v", err)
	}
	if _, ok := tr.(*bridge.Client); !ok {
		t.Fatalf("expected bridge client, got %T", tr)
	}

	tr, err = BuildTransport(cfg.SerialConfig{Port: "/dev/ttyUSB0", Baud: 2400})
	if err != nil {
		t.Fatalf("serial build err=%v", err)
	}
	if _, ok := tr.(*wserial.Client); !ok {
		t.Fatalf("expected serial client, got %T", tr)
	}

	if _, err := BuildTransport(cfg.SerialConfig{Port: "/dev/ttyUSB0"}); err == nil {
		t.Fatalf("expected error for zero baud")
	}
}
