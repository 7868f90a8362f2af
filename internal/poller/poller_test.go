// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/brink-callerid/internal/calls"
	"github.com/tamzrod/brink-callerid/internal/poller/envoi"
)

type fakeClient struct {
	body []byte
	err  error
}

func (f *fakeClient) Fetch(ctx context.Context) ([]byte, error) {
	return f.body, f.err
}

const snapshot = `{
	"responses": [{"code": 200}],
	"data": [
		{"answered": 1, "cnumber": "5550000", "callername_external": "A", "callerid_external": "1", "uniqueid": "10"},
		{"answered": 0, "cnumber": "5550000", "callername_external": "B", "callerid_external": "2", "uniqueid": "11"},
		{"answered": 1, "cnumber": "5551111", "callername_external": "C", "callerid_external": "3", "uniqueid": "12"}
	]
}`

func TestPollOnce_Success(t *testing.T) {
	p, err := New(Config{Store: "5550000"}, &fakeClient{body: []byte(snapshot)})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.PollOnce(context.Background())
	if res.Err != nil {
		t.Fatalf("PollOnce err=%v", res.Err)
	}
	if res.Seen != 3 {
		t.Fatalf("expected 3 records seen, got %d", res.Seen)
	}
	if len(res.Calls) != 1 || res.Calls[0].UniqueID != "10" {
		t.Fatalf("unexpected eligible calls: %+v", res.Calls)
	}
}

func TestPollOnce_Failure(t *testing.T) {
	p, err := New(Config{Store: "5550000"}, &fakeClient{err: errors.New("dial tcp: refused")})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.PollOnce(context.Background())
	if res.Err == nil {
		t.Fatalf("expected error, got nil")
	}
	if res.Calls != nil {
		t.Fatalf("expected no calls on failure")
	}
}

func TestPollOnce_Rejected(t *testing.T) {
	body := []byte(`{"responses":[{"code":403}],"data":[{"answered":1,"cnumber":"5550000","uniqueid":"1"}]}`)
	p, _ := New(Config{Store: "5550000"}, &fakeClient{body: body})

	res := p.PollOnce(context.Background())

	var rej *calls.RejectedError
	if !errors.As(res.Err, &rej) {
		t.Fatalf("expected rejection, got %v", res.Err)
	}
	if res.Calls != nil {
		t.Fatalf("rejected snapshot must yield no calls")
	}
	if string(res.Raw) != string(body) {
		t.Fatalf("raw body not kept")
	}
}

func TestPollOnce_HTTPErrorWithCallsBodyRejected(t *testing.T) {
	body := []byte(`{"responses":[{"code":401,"message":"bad credentials"}]}`)
	p, _ := New(Config{Store: "5550000"}, &fakeClient{
		err: &envoi.StatusError{StatusCode: 401, Body: body},
	})

	res := p.PollOnce(context.Background())

	var rej *calls.RejectedError
	if !errors.As(res.Err, &rej) {
		t.Fatalf("expected rejection, got %v", res.Err)
	}
	if rej.Code != 401 || string(rej.Raw) != string(body) {
		t.Fatalf("unexpected rejection: code=%d raw=%q", rej.Code, rej.Raw)
	}
	if res.Calls != nil {
		t.Fatalf("rejected snapshot must yield no calls")
	}
}

func TestPollOnce_HTTPErrorOtherBodyKept(t *testing.T) {
	body := []byte("<html>Bad Gateway</html>")
	p, _ := New(Config{Store: "5550000"}, &fakeClient{
		err: &envoi.StatusError{StatusCode: 502, Body: body},
	})

	res := p.PollOnce(context.Background())

	var se *envoi.StatusError
	if !errors.As(res.Err, &se) {
		t.Fatalf("expected http status error, got %v", res.Err)
	}
	if string(res.Raw) != string(body) {
		t.Fatalf("raw body not kept: %q", res.Raw)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}, &fakeClient{}); err == nil {
		t.Fatalf("expected error for empty store")
	}
	if _, err := New(Config{Store: "1"}, nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

// ---- runner ----

type everyMs struct{ poll bool }

func (s everyMs) Next(now time.Time) (time.Time, bool) {
	return now.Add(time.Millisecond), s.poll
}

func TestRun_PollsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	done := make(chan struct{})
	go func() {
		Run(ctx, everyMs{poll: true}, func(context.Context) {
			n++
			if n == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if n != 3 {
		t.Fatalf("expected 3 cycles, got %d", n)
	}
}

func TestRun_IdleTicksDoNotPoll(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	polled := false
	Run(ctx, everyMs{poll: false}, func(context.Context) { polled = true })

	if polled {
		t.Fatalf("idle schedule must not poll")
	}
}
