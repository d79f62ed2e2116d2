package demodata

import (
	"math/rand"
	"testing"
	"time"
)

// scriptedRand は事前に用意した値を順に返す乱数源です。
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		r.t.Fatal("scriptedRand: no more floats")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		r.t.Fatal("scriptedRand: no more ints")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		r.t.Fatalf("scriptedRand: value %d out of range for Intn(%d)", v, n)
	}
	return v
}

func TestGenerateDay_NoShiftWhenProbabilityMissed(t *testing.T) {
	t.Parallel()

	// 月曜の発生確率は 0.10。0.10 以上の抽選値ではシフトなし。
	gen := NewGenerator(DefaultParameters(), &scriptedRand{t: t, floats: []float64{0.10}})

	monday := date(2024, time.January, 8)
	if shifts := gen.GenerateDay(monday); len(shifts) != 0 {
		t.Fatalf("expected no shifts, got %d", len(shifts))
	}
}

func TestGenerateDay_SingleShiftDraws(t *testing.T) {
	t.Parallel()

	// 金曜 (確率 0.90)。窓 16-20 時の 19:45 開始、8 時間を引くが
	// 深夜をまたぐため 23-19=4 時間へ切り詰められる。
	rng := &scriptedRand{
		t:      t,
		floats: []float64{0.50, 0.25},
		ints: []int{
			2, // 窓 16-20
			3, // 16+3=19 時
			3, // 45 分
			5, // 3+5=8 時間
			0, // クレジットチップ 50
			0, // 現金チップ 0
			0, // ティップアウト 1
		},
	}
	gen := NewGenerator(DefaultParameters(), rng)

	friday := date(2024, time.January, 12)
	shifts := gen.GenerateDay(friday)

	if len(shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(shifts))
	}
	got := shifts[0]
	if want := 19*time.Hour + 45*time.Minute; got.Start != want {
		t.Fatalf("expected start %s, got %s", want, got.Start)
	}
	if got.Hours != 4 {
		t.Fatalf("expected 4 hours after midnight clamp, got %d", got.Hours)
	}
	if got.CreditTips != 50 || got.CashTips != 0 || got.Tipout != 1 {
		t.Fatalf("unexpected tips: %+v", got)
	}
}

func TestGenerateDay_DoubleShiftSecondDroppedWhenItCannotFit(t *testing.T) {
	t.Parallel()

	// 1 本目が 19:45 開始で 23:45 まで。休憩 2 時間後の 2 本目は
	// 最短 3 時間すら 23:59 までに収まらないため破棄される。
	rng := &scriptedRand{
		t:      t,
		floats: []float64{0.50, 0.10, 0.50},
		ints: []int{
			2, 3, 3, // 19:45 開始
			3,       // 3+3=6 時間 → 4 時間へ切り詰め
			0, 0, 0, // 1 本目チップ
			0, // 2 本目 3 時間 (収まらず破棄)
		},
	}
	gen := NewGenerator(DefaultParameters(), rng)

	saturday := date(2024, time.January, 13)
	shifts := gen.GenerateDay(saturday)

	if len(shifts) != 1 {
		t.Fatalf("expected second shift dropped, got %d shifts", len(shifts))
	}
	if shifts[0].Hours != 4 {
		t.Fatalf("expected first shift clamped to 4 hours, got %d", shifts[0].Hours)
	}
}

func TestGenerateDay_DoubleShiftOrderingAndBreak(t *testing.T) {
	t.Parallel()

	// 1 本目 8:00 開始 3 時間、休憩 1 時間で 2 本目は 12:00 開始。
	rng := &scriptedRand{
		t:      t,
		floats: []float64{0.50, 0.10, 0.0},
		ints: []int{
			0, 0, 0, // 8:00 開始
			0,       // 3 時間
			0, 0, 0, // 1 本目チップ
			0,       // 2 本目 3 時間
			0, 0, 0, // 2 本目チップ
		},
	}
	gen := NewGenerator(DefaultParameters(), rng)

	shifts := gen.GenerateDay(date(2024, time.January, 13))

	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(shifts))
	}
	first, second := shifts[0], shifts[1]
	if want := 8 * time.Hour; first.Start != want {
		t.Fatalf("expected first start %s, got %s", want, first.Start)
	}
	if want := 12 * time.Hour; second.Start != want {
		t.Fatalf("expected second start %s, got %s", want, second.Start)
	}
	if first.Hours+second.Hours > DefaultParameters().MaxDailyHours {
		t.Fatalf("daily hours exceed cap: %d", first.Hours+second.Hours)
	}
}

func TestGenerateDay_Invariants(t *testing.T) {
	t.Parallel()

	params := DefaultParameters()
	gen := NewGenerator(params, rand.New(rand.NewSource(1)))
	latestEnd := 23*time.Hour + 59*time.Minute

	day := date(2024, time.January, 1)
	for i := 0; i < 365; i++ {
		shifts := gen.GenerateDay(day.AddDate(0, 0, i))
		if len(shifts) > 2 {
			t.Fatalf("more than 2 shifts generated: %d", len(shifts))
		}

		total := 0
		for j, s := range shifts {
			if j == 0 {
				startHour := int(s.Start / time.Hour)
				if startHour < 8 || startHour >= 20 {
					t.Fatalf("first shift starts outside windows: %s", s.Start)
				}
				if s.Start%(15*time.Minute) != 0 {
					t.Fatalf("start not aligned to 15 minutes: %s", s.Start)
				}
			}
			if s.Hours < params.SingleMinHours || s.Hours > params.SingleMaxHours {
				t.Fatalf("hours out of range: %d", s.Hours)
			}
			if s.End() > latestEnd {
				t.Fatalf("shift ends past midnight: start %s hours %d", s.Start, s.Hours)
			}
			if s.CreditTips < params.CreditTipsMin || s.CreditTips > params.CreditTipsMax {
				t.Fatalf("credit tips out of range: %d", s.CreditTips)
			}
			if s.CashTips < 0 || s.CashTips > params.CashTipsMax {
				t.Fatalf("cash tips out of range: %d", s.CashTips)
			}
			if s.Tipout < params.TipoutMin || s.Tipout > params.TipoutMax {
				t.Fatalf("tipout out of range: %d", s.Tipout)
			}
			total += s.Hours
		}

		if total > params.MaxDailyHours {
			t.Fatalf("daily hours exceed cap: %d", total)
		}
		if len(shifts) == 2 {
			gapToSecond := shifts[1].Start - shifts[0].End()
			if gapToSecond < time.Duration(params.BreakMinHours*float64(time.Hour)) {
				t.Fatalf("break shorter than minimum: %s", gapToSecond)
			}
		}
	}
}

func TestGenerateDay_ProbabilityExtremes(t *testing.T) {
	t.Parallel()

	always := DefaultParameters()
	always.ShiftProbability = map[time.Weekday]float64{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		always.ShiftProbability[d] = 1.0
	}
	never := DefaultParameters()
	never.ShiftProbability = map[time.Weekday]float64{}

	alwaysGen := NewGenerator(always, rand.New(rand.NewSource(7)))
	neverGen := NewGenerator(never, rand.New(rand.NewSource(7)))

	day := date(2024, time.March, 1)
	for i := 0; i < 30; i++ {
		if len(alwaysGen.GenerateDay(day.AddDate(0, 0, i))) == 0 {
			t.Fatal("probability 1.0 produced a day without shifts")
		}
		if len(neverGen.GenerateDay(day.AddDate(0, 0, i))) != 0 {
			t.Fatal("missing weekday probability produced shifts")
		}
	}
}
