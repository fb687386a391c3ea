// internal/forecast/composer.go

// Package forecast composes the Grandpa Spuds fishing-condition reports
// from stored user records and NOAA tide predictions.
package forecast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SpudsBot-Go/internal/noaa"
	"SpudsBot-Go/internal/stations"

	"go.uber.org/zap"
)

// TideService is the slice of the NOAA client the composer needs.
type TideService interface {
	GetStationMetadata(ctx context.Context, stationID string) (*noaa.Station, error)
	GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) ([]noaa.Prediction, error)
}

// Composer renders fishing-condition reports. Tide-lookup failures are
// soft: every outcome is a user-facing message, never an error.
type Composer struct {
	tides  TideService
	now    func() time.Time
	logger *zap.Logger
}

// NewComposer initializes a Composer against the given tide service.
func NewComposer(tides TideService, logger *zap.Logger) *Composer {
	return &Composer{
		tides:  tides,
		now:    time.Now,
		logger: logger,
	}
}

// Report builds the striped bass forecast for a stored user. The location
// must contain one of the known fishing spots; otherwise the report names
// the supported spots instead.
func (c *Composer) Report(ctx context.Context, firstName, fishingLocation string) string {
	stationID, ok := stations.Resolve(fishingLocation)
	if !ok {
		return fmt.Sprintf(
			"Hey %s, I don't have tide information for %s yet. I currently support %s. Please try one of these locations!",
			firstName, fishingLocation, supportedSpots(),
		)
	}

	station, err := c.tides.GetStationMetadata(ctx, stationID)
	if err != nil {
		c.logger.Warn("Station metadata lookup failed", zap.String("station", stationID), zap.Error(err))
		return tryAgainMessage(firstName)
	}

	start := c.now()
	end := start.AddDate(0, 0, 3)

	predictions, err := c.tides.GetTidePredictions(ctx, station.ID, start, end)
	if err != nil {
		c.logger.Warn("Tide predictions lookup failed", zap.String("station", station.ID), zap.Error(err))
		return tryAgainMessage(firstName)
	}
	if len(predictions) == 0 {
		return tryAgainMessage(firstName)
	}

	// Next two high and two low tides, in the order NOAA returns them.
	next := predictions
	if len(next) > 4 {
		next = next[:4]
	}

	var report strings.Builder
	fmt.Fprintf(&report, "Hey %s! Here's your striped bass fishing forecast for %s:\n\n", firstName, fishingLocation)
	report.WriteString("Grandpa Spuds here, and let me tell you about the next few tides:\n\n")

	for _, tide := range next {
		fmt.Fprintf(&report, "- %s tide at %s (%s ft)\n", tide.Type, formatTideTime(tide.Time), tide.Height)
	}

	report.WriteString("\nPro tip from Grandpa Spuds: Striped bass often feed most actively during tide changes, ")
	report.WriteString("especially during the first two hours of an incoming tide or the last two hours of an outgoing tide. ")
	report.WriteString("The low-light periods around dawn and dusk combined with these tide times are your best bet!")

	return report.String()
}

func tryAgainMessage(firstName string) string {
	return fmt.Sprintf("Sorry %s, I'm having trouble getting the tide predictions right now. Please try again later!", firstName)
}

// formatTideTime renders a NOAA local-datetime string as a 12-hour clock
// time. Unparseable values pass through as returned.
func formatTideTime(t string) string {
	parsed, err := time.Parse("2006-01-02 15:04", t)
	if err != nil {
		return t
	}
	return parsed.Format("03:04 PM")
}

func supportedSpots() string {
	names := stations.Names()
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}
