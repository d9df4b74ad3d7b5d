// Package catalog holds the static reference data the advisory logic runs on:
// the crop database, per-crop plan templates and the demo market/community
// seeds. Everything here is process-wide read-only configuration loaded once.
package catalog

import "github.com/harvesthub/agrismart-backend/pkg/model"

// Crops returns the rule-based crop database used by the recommendation
// engine. Callers must treat the returned slice as read-only.
func Crops() []model.CropRecord {
	out := make([]model.CropRecord, len(cropDB))
	copy(out, cropDB)
	return out
}

// CropByName looks up a catalog entry by exact name.
func CropByName(name string) (model.CropRecord, bool) {
	for _, c := range cropDB {
		if c.Name == name {
			return c, true
		}
	}
	return model.CropRecord{}, false
}

var cropDB = []model.CropRecord{
	{
		ID: "1", Name: "Wheat", Seasons: []model.Season{model.SeasonRabi},
		WaterNeed: model.WaterNeedModerate, BaseCost: 12000, MarketPrice: 2400,
		YieldMin: 18, YieldMax: 22, BaseRisk: model.RiskLow,
		PestSusceptibility: model.RiskMedium, DurationDays: 120, Icon: "🌾",
		Image: "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID: "2", Name: "Rice (Basmati)", Seasons: []model.Season{model.SeasonKharif},
		WaterNeed: model.WaterNeedHigh, BaseCost: 18000, MarketPrice: 2800,
		YieldMin: 20, YieldMax: 25, BaseRisk: model.RiskMedium,
		PestSusceptibility: model.RiskHigh, DurationDays: 150, Icon: "🍚",
		Image: "https://images.unsplash.com/photo-1536633310979-b854b866ed5f?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID: "3", Name: "Cotton", Seasons: []model.Season{model.SeasonKharif},
		WaterNeed: model.WaterNeedModerate, BaseCost: 22000, MarketPrice: 6000,
		YieldMin: 8, YieldMax: 12, BaseRisk: model.RiskHigh,
		PestSusceptibility: model.RiskHigh, DurationDays: 180, Icon: "☁️",
		Image: "https://images.unsplash.com/photo-1594903330656-11f26771d906?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID: "4", Name: "Soybean", Seasons: []model.Season{model.SeasonKharif},
		WaterNeed: model.WaterNeedModerate, BaseCost: 14000, MarketPrice: 4200,
		YieldMin: 10, YieldMax: 14, BaseRisk: model.RiskLow,
		PestSusceptibility: model.RiskMedium, DurationDays: 110, Icon: "🌱",
		Image: "https://images.unsplash.com/photo-1550989460-0adf9ea622e2?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID: "5", Name: "Mustard", Seasons: []model.Season{model.SeasonRabi},
		WaterNeed: model.WaterNeedLow, BaseCost: 8000, MarketPrice: 5000,
		YieldMin: 6, YieldMax: 9, BaseRisk: model.RiskLow,
		PestSusceptibility: model.RiskLow, DurationDays: 100, Icon: "🌼",
		Image: "https://images.unsplash.com/photo-1500382017468-9049fed747ef?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID: "6", Name: "Maize", Seasons: []model.Season{model.SeasonKharif, model.SeasonRabi, model.SeasonZaid},
		WaterNeed: model.WaterNeedModerate, BaseCost: 15000, MarketPrice: 2200,
		YieldMin: 25, YieldMax: 35, BaseRisk: model.RiskMedium,
		PestSusceptibility: model.RiskMedium, DurationDays: 110, Icon: "🌽",
		Image: "https://images.unsplash.com/photo-1551754655-cd27e38d2076?auto=format&fit=crop&q=80&w=400",
	},
}
