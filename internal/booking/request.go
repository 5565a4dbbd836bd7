// Package booking normalizes and validates incoming rental requests.
// The transport is multipart/form-encoded, so every field arrives as a
// string (games and contact as JSON blobs); this package turns that
// loose payload into a typed draft or a structured validation failure
// naming the first violated rule.
package booking

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/rapsplay/console-rental/internal/model"
	"github.com/rapsplay/console-rental/internal/pricing"
)

// DefaultTZ is the display timezone applied when the client sends none.
const DefaultTZ = "Asia/Kolkata"

// MaxGames is the most games a single booking may carry.
const MaxGames = 5

// Rule identifiers reported on validation failure, in evaluation order.
const (
	RuleRequired    = "required"
	RuleConsole     = "console"
	RulePeriod      = "period"
	RuleControllers = "controllers"
	RuleDuration    = "duration"
	RuleWindow      = "window"
	RuleGames       = "games"
	RuleContact     = "contact"
	RulePricing     = "pricing"
)

// RawRequest carries the booking form exactly as submitted. Games and
// Contact are JSON blobs; Period falls back to the legacy PlanType
// field when empty. IDImage/HolderImage are filenames assigned by the
// upload layer, never file bytes.
type RawRequest struct {
	Console     string // form field "console"
	Period      string // form field "rental_period"
	PlanType    string // legacy alias for Period
	Controllers string // numeric string, 1..4
	Duration    string // numeric string, >= 1
	IsMember    string // truthy: "true" or "1"
	StartAt     string // RFC 3339 instant
	EndAt       string // RFC 3339 instant
	StartLabel  string // display-only start string
	EndLabel    string // display-only end string
	TZ          string // display timezone
	Games       string // JSON array of game identifiers
	Contact     string // JSON object {name,email,phone,address}
	IDImage     string // stored filename of the ID document
	HolderImage string // stored filename of the person-with-ID photo
}

// Draft is a fully validated booking ready for persistence. Total is
// the authoritative server-side price; any client-submitted amount is
// ignored.
type Draft struct {
	Console     string
	Games       []string
	Period      string
	Controllers int
	Duration    int
	IsMember    bool
	StartAt     time.Time
	EndAt       time.Time
	StartLabel  string
	EndLabel    string
	TZ          string
	Contact     model.Contact
	IDImage     string
	HolderImage string
	Total       int
}

// ValidationError identifies the first violated rule. Message is safe
// to return to the client verbatim.
type ValidationError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func fail(rule, msg string) (*Draft, *ValidationError) {
	return nil, &ValidationError{Rule: rule, Message: msg}
}

// Validate applies the booking rules in order, first failure wins.
// Malformed games JSON degrades to an empty list; malformed contact
// JSON is treated the same as a missing contact.
func Validate(raw RawRequest) (*Draft, *ValidationError) {
	period := raw.Period
	if period == "" {
		period = raw.PlanType
	}

	var games []string
	if raw.Games != "" {
		if err := json.Unmarshal([]byte(raw.Games), &games); err != nil {
			games = nil
		}
	}

	var contact *model.Contact
	if raw.Contact != "" {
		var c model.Contact
		if err := json.Unmarshal([]byte(raw.Contact), &c); err == nil {
			contact = &c
		}
	}

	if raw.Console == "" || period == "" || raw.StartAt == "" || raw.EndAt == "" || contact == nil {
		return fail(RuleRequired, "Missing required fields.")
	}
	if raw.Console != model.ConsolePS5 && raw.Console != model.ConsolePS4 {
		return fail(RuleConsole, "Invalid console.")
	}
	if period != model.PeriodHourly && period != model.PeriodDaily {
		return fail(RulePeriod, "Invalid rental period.")
	}
	controllers, err := strconv.Atoi(raw.Controllers)
	if err != nil || controllers < 1 || controllers > 4 {
		return fail(RuleControllers, "Invalid controllers (1-4).")
	}
	duration, err := strconv.Atoi(raw.Duration)
	if err != nil || duration < 1 {
		return fail(RuleDuration, "Invalid duration.")
	}
	startAt, errStart := time.Parse(time.RFC3339, raw.StartAt)
	endAt, errEnd := time.Parse(time.RFC3339, raw.EndAt)
	if errStart != nil || errEnd != nil || !endAt.After(startAt) {
		return fail(RuleWindow, "End must be after start.")
	}
	if len(games) > MaxGames {
		return fail(RuleGames, "Max 5 games allowed.")
	}
	if contact.Name == "" || contact.Email == "" || contact.Phone == "" || contact.Address == "" {
		return fail(RuleContact, "Incomplete contact info.")
	}

	member := raw.IsMember == "true" || raw.IsMember == "1"

	total, ok := pricing.Price(controllers, duration, period, member)
	if !ok {
		return fail(RulePricing, "Invalid pricing selection.")
	}

	tz := raw.TZ
	if tz == "" {
		tz = DefaultTZ
	}
	if games == nil {
		games = []string{}
	}

	return &Draft{
		Console:     raw.Console,
		Games:       games,
		Period:      period,
		Controllers: controllers,
		Duration:    duration,
		IsMember:    member,
		StartAt:     startAt.UTC(),
		EndAt:       endAt.UTC(),
		StartLabel:  raw.StartLabel,
		EndLabel:    raw.EndLabel,
		TZ:          tz,
		Contact:     *contact,
		IDImage:     raw.IDImage,
		HolderImage: raw.HolderImage,
		Total:       total,
	}, nil
}
