// Package quiz generates question sets per mode. Daily modes are seeded by
// the Madrid-local date so every player worldwide sees the same content; all
// other modes draw fresh randomness each run.
package quiz

import (
	"math/rand"
	"time"

	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/models"
)

// optionsPerQuestion is the total answer count shown, correct one included.
const optionsPerQuestion = 8

// Option is one selectable answer.
type Option struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Question asks which flag belongs to TargetName.
type Question struct {
	TargetName  string   `json:"targetName"`
	CorrectCode string   `json:"correctCode"`
	Options     []Option `json:"options"`
}

// rng abstracts over the seeded daily generator and plain randomness.
type rng interface {
	Next() float64
}

// SeededRNG is the linear congruential generator the daily challenges use.
// The constants are fixed; changing them would desynchronize every client's
// daily content.
type SeededRNG struct {
	seed int64
}

func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{seed: seed}
}

// Next returns a pseudo-random float in [0, 1).
func (r *SeededRNG) Next() float64 {
	r.seed = (r.seed*9301 + 49297) % 233280
	return float64(r.seed) / 233280
}

// unseededRNG adapts math/rand to the rng interface.
type unseededRNG struct {
	r *rand.Rand
}

func (u unseededRNG) Next() float64 { return u.r.Float64() }

// Generator produces question sets. The clock decides the daily seed and the
// thematic pool's day of week.
type Generator struct {
	clock clock.Clock
	rand  *rand.Rand
}

func NewGenerator(clk clock.Clock) *Generator {
	return &Generator{
		clock: clk,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ThematicPoolForDay picks the thematic daily's country pool by Madrid day of
// week (Sunday=0). Europe is the unmatched-day fallback.
func ThematicPoolForDay(weekday time.Weekday) []Country {
	switch weekday {
	case time.Monday:
		return AsianCountries
	case time.Tuesday:
		return AfricanCountries
	case time.Wednesday:
		return AmericanCountries
	case time.Thursday:
		return OceaniaCountries
	case time.Friday:
		return CaribbeanCountries
	case time.Saturday:
		return PopulousCountries
	case time.Sunday:
		return AllWorldCountries
	}
	return EuropeanCountries
}

// Generate builds the question sequence for a run of the given mode. Seeded
// modes fix WHICH countries appear; the final question order is always
// re-shuffled with unseeded randomness so positions cannot be memorized.
func (g *Generator) Generate(mode models.GameMode) []Question {
	now := g.clock.Now()

	var r rng
	var pool []Country
	switch mode {
	case models.ModeDailyStandard:
		r = NewSeededRNG(clock.DailySeed(now, false))
		pool = cloneCountries(EuropeanCountries)
	case models.ModeDailyThematic:
		r = NewSeededRNG(clock.DailySeed(now, true))
		pool = cloneCountries(ThematicPoolForDay(now.Weekday()))
	default:
		r = unseededRNG{g.rand}
		pool = cloneCountries(EuropeanCountries)
	}

	shuffle(pool, r)

	count := mode.QuestionCount()
	if count > len(pool) {
		count = len(pool)
	}
	targets := pool[:count]

	// Thematic distractors come from the same themed pool so every option
	// fits the day's region; other modes distract with Europe.
	distractorPool := EuropeanCountries
	if mode == models.ModeDailyThematic {
		distractorPool = pool
	}

	questions := make([]Question, 0, count)
	for _, target := range targets {
		candidates := make([]Country, 0, len(distractorPool))
		for _, c := range distractorPool {
			if c.Code != target.Code {
				candidates = append(candidates, c)
			}
		}
		shuffle(candidates, r)
		if len(candidates) > optionsPerQuestion-1 {
			candidates = candidates[:optionsPerQuestion-1]
		}

		options := append([]Country{target}, candidates...)
		shuffle(options, r)

		q := Question{
			TargetName:  target.Name,
			CorrectCode: target.Code,
			Options:     make([]Option, 0, len(options)),
		}
		for _, o := range options {
			q.Options = append(q.Options, Option{Name: o.Name, Code: o.Code})
		}
		questions = append(questions, q)
	}

	g.rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

func cloneCountries(src []Country) []Country {
	out := make([]Country, len(src))
	copy(out, src)
	return out
}

// shuffle is a Fisher-Yates pass driven by the given rng.
func shuffle(cs []Country, r rng) {
	for i := len(cs) - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		if j > i {
			j = i
		}
		cs[i], cs[j] = cs[j], cs[i]
	}
}
