// Package clock pins every calendar computation in the game to the
// Europe/Madrid timezone. Seasons, league weeks, daily challenges and streaks
// all share one global day boundary regardless of where the player is.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Madrid is the reference location for all day/week/season identity.
var Madrid *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		// tzdata is linked in, so this only fires on a corrupt build.
		panic(fmt.Sprintf("clock: load Europe/Madrid: %v", err))
	}
	Madrid = loc
}

// Clock supplies the current Madrid-local time. Production code uses System;
// tests inject Fixed instants.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now().In(Madrid) }

// Fixed is a Clock frozen at one instant.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time { return f.T.In(Madrid) }

// SeasonID returns the YYYY-MM season identifier for t.
func SeasonID(t time.Time) string {
	t = t.In(Madrid)
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DayKey returns the YYYY-MM-DD identifier of t's Madrid-local calendar day.
func DayKey(t time.Time) string {
	t = t.In(Madrid)
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Midnight returns t truncated to its Madrid-local midnight. Rebuilding via
// time.Date keeps the result correct across the two DST-shift days.
func Midnight(t time.Time) time.Time {
	t = t.In(Madrid)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Madrid)
}

// Yesterday returns the Madrid-local midnight of the day before t.
func Yesterday(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, -1)
}

// WeekID returns the YYYY-MM-DD of the most recent Saturday at or before t.
// League weeks run Saturday through Friday.
func WeekID(t time.Time) string {
	t = Midnight(t)
	// Weekday: Sunday=0 .. Saturday=6. Distance back to Saturday.
	diff := (int(t.Weekday()) + 1) % 7
	return DayKey(t.AddDate(0, 0, -diff))
}

// LeagueDay returns the 1-based day within the league week: Saturday=1,
// Sunday=2, ... Friday=7.
func LeagueDay(t time.Time) int {
	t = t.In(Madrid)
	return (int(t.Weekday())+1)%7 + 1
}

// DailySeed derives the deterministic quiz seed for t's Madrid-local date.
// The thematic daily is offset so both dailies never share content.
func DailySeed(t time.Time, thematic bool) int64 {
	t = t.In(Madrid)
	seed := int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
	if thematic {
		seed += 99999
	}
	return seed
}
