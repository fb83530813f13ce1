package cpu

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

const procStat = `cpu  4705 356 584 3699176 23060 0 277 0 0 0
cpu0 1393280 32966 572056 13343292 6130 0 17875 0 23933 0
intr 114930548 113199788 3 0 5 263 0 4 [... lots more numbers ...]
ctxt 1990473
btime 1062191376
`

func TestParseTicks(t *testing.T) {
	got, err := ParseTicks(strings.NewReader(procStat))
	if err != nil {
		t.Fatalf("ParseTicks() error = %v", err)
	}

	want := Ticks{User: 4705, Nice: 356, System: 584, Idle: 3699176, Iowait: 23060, Irq: 0, Softirq: 277, Steal: 0}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("ParseTicks() diff (-want +got):\n%s", diff)
	}
}

func TestParseTicksShortLine(t *testing.T) {
	got, err := ParseTicks(strings.NewReader("cpu 10 20 30 40\n"))
	if err != nil {
		t.Fatalf("ParseTicks() error = %v", err)
	}
	if got.Total() != 100 || got.IdleTotal() != 40 {
		t.Errorf("got total=%d idle=%d", got.Total(), got.IdleTotal())
	}
}

func TestParseTicksErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"cpu0 1 2 3 4 5 6 7 8\n",
		"cpu 1 2 3\n",
		"cpu 1 2 x 4 5 6 7 8\n",
	} {
		if _, err := ParseTicks(strings.NewReader(in)); err == nil {
			t.Errorf("ParseTicks(%q) expected error", in)
		}
	}
}

func TestComputePercent(t *testing.T) {
	first := Ticks{User: 100, System: 100, Idle: 800}

	pct, base := ComputePercent(Baseline{}, first)
	if pct != 0 {
		t.Errorf("first call = %v, want 0", pct)
	}
	if !base.Valid || base.Total != 1000 || base.Idle != 800 {
		t.Fatalf("unexpected baseline %+v", base)
	}

	// 100 more ticks, 25 of them idle.
	second := Ticks{User: 150, System: 125, Idle: 820, Iowait: 5}
	pct, base = ComputePercent(base, second)
	if pct != 75 {
		t.Errorf("second call = %v, want 75", pct)
	}

	pct, base = ComputePercent(base, second)
	if pct != 0 {
		t.Errorf("unchanged counters = %v, want 0", pct)
	}

	pct, base = ComputePercent(base, Ticks{User: 1, Idle: 1})
	if pct != 0 {
		t.Errorf("counter regression = %v, want 0", pct)
	}
	if base.Total != 2 {
		t.Errorf("regression should rebaseline, got %+v", base)
	}
}

func TestComputePercentBounds(t *testing.T) {
	base := Baseline{Total: 1000, Idle: 500, Valid: true}

	tests := []struct {
		name string
		t    Ticks
		want float64
	}{
		{name: "fully busy", t: Ticks{User: 600, Idle: 500}, want: 100},
		{name: "fully idle", t: Ticks{User: 500, Idle: 600}, want: 0},
		{name: "half", t: Ticks{User: 550, Idle: 550}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ComputePercent(base, tt.t)
			if got != tt.want {
				t.Errorf("ComputePercent() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("out of range: %v", got)
			}
		})
	}
}
