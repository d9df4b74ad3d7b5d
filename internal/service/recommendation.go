package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// Soil nitrogen thresholds (kg/ha) for yield adjustment.
const (
	defaultSoilN   = 300
	lowNThreshold  = 250
	highNThreshold = 450

	maxRecommendations = 5
)

// RecommendationService scores the crop catalog against a farmer's profile.
// The engine is deterministic for a fixed (profile, month) pair.
type RecommendationService struct {
	logger  *zap.Logger
	printer *message.Printer
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// Recommend returns up to five crops ranked by expected profit per acre for
// the season containing now. The list is never empty.
func (s *RecommendationService) Recommend(profile *model.FarmerProfile, now time.Time) ([]model.RecommendedCrop, error) {
	if profile == nil {
		return nil, ErrProfileRequired
	}

	seasons := seasonsForMonth(int(now.Month()))
	nitrogen := soilNitrogen(profile.Soil)

	var out []model.RecommendedCrop
	for _, crop := range catalog.Crops() {
		if !inSeason(crop, seasons) {
			continue
		}
		out = append(out, s.score(crop, profile, nitrogen))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RawProfit > out[j].RawProfit
	})
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}

	s.logger.Info("crop recommendations computed",
		zap.String("user_id", profile.UserID),
		zap.Int("count", len(out)),
		zap.Int("soil_n", nitrogen),
	)

	return out, nil
}

func (s *RecommendationService) score(crop model.CropRecord, profile *model.FarmerProfile, nitrogen int) model.RecommendedCrop {
	risk := waterRisk(crop, profile.WaterSource)

	factor := yieldFactor(nitrogen)
	yieldMin := roundHalfEven(float64(crop.YieldMin) * factor)
	yieldMax := roundHalfEven(float64(crop.YieldMax) * factor)

	avgYield := float64(yieldMin+yieldMax) / 2
	profit := roundHalfEven(avgYield*float64(crop.MarketPrice) - float64(crop.BaseCost))

	return model.RecommendedCrop{
		ID:                 crop.ID,
		Name:               crop.Name,
		Icon:               crop.Icon,
		Image:              crop.Image,
		ExpectedProfit:     s.rupees(profit),
		RawProfit:          profit,
		RiskLevel:          risk,
		Duration:           strconv.Itoa(crop.DurationDays) + " Days",
		Cost:               s.rupees(crop.BaseCost),
		WaterRequirement:   crop.WaterNeed,
		PestSusceptibility: crop.PestSusceptibility,
		Yield:              strconv.Itoa(yieldMin) + "-" + strconv.Itoa(yieldMax) + " Q/acre",
		SellingPrice:       "₹" + strconv.Itoa(crop.MarketPrice) + "/Q",
	}
}

func (s *RecommendationService) rupees(amount int) string {
	return s.printer.Sprintf("₹%d", amount)
}

// seasonsForMonth maps a calendar month (1-12) to the two seasons a farmer
// would realistically plan for, the one underway and the one approaching.
func seasonsForMonth(month int) []model.Season {
	switch {
	case month >= 4 && month <= 7:
		return []model.Season{model.SeasonZaid, model.SeasonKharif}
	case month >= 8 && month <= 11:
		return []model.Season{model.SeasonKharif, model.SeasonRabi}
	default:
		return []model.Season{model.SeasonRabi, model.SeasonZaid}
	}
}

// inSeason keeps Kharif crops regardless of window so the list is never empty.
func inSeason(crop model.CropRecord, seasons []model.Season) bool {
	for _, cs := range crop.Seasons {
		if cs == model.SeasonKharif {
			return true
		}
		for _, want := range seasons {
			if cs == want {
				return true
			}
		}
	}
	return false
}

// waterRisk escalates a crop's base risk when the farm's water source cannot
// reliably cover a high water requirement.
func waterRisk(crop model.CropRecord, source model.WaterSource) model.RiskLevel {
	if crop.WaterNeed != model.WaterNeedHigh {
		return crop.BaseRisk
	}
	switch source {
	case model.WaterSourceRainFed:
		return model.RiskHigh
	case model.WaterSourceCanal:
		if crop.BaseRisk == model.RiskLow {
			return model.RiskMedium
		}
	}
	return crop.BaseRisk
}

// soilNitrogen parses the nitrogen value off a soil card, tolerating trailing
// units ("280 kg/ha"). Missing or unparseable values assume a mid-range soil.
func soilNitrogen(soil *model.SoilReading) int {
	if soil == nil || strings.TrimSpace(soil.N) == "" {
		return defaultSoilN
	}
	fields := strings.Fields(strings.TrimSpace(soil.N))
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return defaultSoilN
	}
	return n
}

func yieldFactor(nitrogen int) float64 {
	switch {
	case nitrogen < lowNThreshold:
		return 0.9
	case nitrogen > highNThreshold:
		return 1.1
	default:
		return 1.0
	}
}

// roundHalfEven keeps scaled yield bands symmetric: 22.5 rounds to 22 while
// 27.5 rounds to 28.
func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}
