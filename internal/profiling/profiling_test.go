package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	stop := Track("test.Sleep")
	time.Sleep(2 * time.Millisecond)
	stop()
	Count("test.chunks", 3)
	Count("test.chunks", 2)

	if d := Snapshot()["test.Sleep"]; d < 2*time.Millisecond {
		t.Errorf("tracked %v, want at least 2ms", d)
	}
	if c := Counter("test.chunks"); c != 5 {
		t.Errorf("counter = %d, want 5", c)
	}
	if s := TopN(3); !strings.HasPrefix(s, "test.Sleep:") || !strings.HasSuffix(s, "ms") {
		t.Errorf("TopN = %q", s)
	}

	ResetFrame()
	if len(Snapshot()) != 0 || Counter("test.chunks") != 0 {
		t.Error("ResetFrame left data behind")
	}
	if TopN(5) != "" {
		t.Error("TopN on an empty frame should be empty")
	}
}
