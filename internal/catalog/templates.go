package catalog

import "github.com/harvesthub/agrismart-backend/pkg/model"

// DefaultTemplateCrop is substituted when a plan is requested for a crop that
// has no template of its own.
const DefaultTemplateCrop = "Wheat"

// Template returns the plan template for a crop. Unknown crops fall back to
// the Wheat template; the second return value reports whether the lookup was
// an exact match.
func Template(crop string) (model.PlanTemplate, bool) {
	if t, ok := planTemplates[crop]; ok {
		return t, true
	}
	return planTemplates[DefaultTemplateCrop], false
}

var planTemplates = map[string]model.PlanTemplate{
	"Wheat": {
		Crop:         "Wheat",
		DurationDays: 120,
		Stages: []model.PlanStageTemplate{
			{ID: "1", Name: "Sowing", Duration: "20 Days", StartDay: 0, Icon: "🚜",
				Thumb:       "https://images.unsplash.com/photo-1592939331610-85f269a9b251?auto=format&fit=crop&q=80&w=200",
				Description: "Soil prep and seed sowing.",
				Tasks:       []string{"Soil Tilling", "Seed Treatment", "Sowing"}},
			{ID: "2", Name: "Crown Root", Duration: "20-25 Days", StartDay: 20, Icon: "🌱",
				Thumb:       "https://images.unsplash.com/photo-1523348837708-15d4a09cfac2?auto=format&fit=crop&q=80&w=200",
				Description: "Critical stage for irrigation.",
				Tasks:       []string{"First Irrigation", "Nitrogen Top Dressing"}},
			{ID: "3", Name: "Flowering", Duration: "60-80 Days", StartDay: 60, Icon: "🌸",
				Thumb:       "https://images.unsplash.com/photo-1500651230702-0e2d8a49d4ad?auto=format&fit=crop&q=80&w=200",
				Description: "Grain setting begins.",
				Tasks:       []string{"Fungicide Spray", "Check Moisture"}},
			{ID: "4", Name: "Harvest", Duration: "110-120 Days", StartDay: 110, Icon: "🌾",
				Thumb:       "https://images.unsplash.com/photo-1530507629858-e4977d30e9e0?auto=format&fit=crop&q=80&w=200",
				Description: "Grain maturation complete.",
				Tasks:       []string{"Harvesting"}},
		},
		Tasks: []model.PlanTaskTemplate{
			{DayOffset: -2, Title: "Basal Dose", Description: "Apply DAP and Potash before sowing.", Quantity: "50kg/acre", Category: model.CategoryFertilizer},
			{DayOffset: 0, Title: "Sowing", Description: "Sow seeds at 5cm depth.", Quantity: "40kg/acre", Category: model.CategoryHarvest},
			{DayOffset: 21, Title: "CRI Irrigation", Description: "Most critical irrigation stage for root development.", Quantity: "Field Capacity", Category: model.CategoryIrrigation},
			{DayOffset: 25, Title: "Weed Control", Description: "Apply herbicide for broadleaf weeds.", Quantity: "As needed", Category: model.CategoryPesticide},
			{DayOffset: 45, Title: "Urea Top Dressing", Description: "Boost vegetative growth.", Quantity: "25kg/acre", Category: model.CategoryFertilizer},
		},
	},
	"Rice (Basmati)": {
		Crop:         "Rice (Basmati)",
		DurationDays: 140,
		Stages: []model.PlanStageTemplate{
			{ID: "1", Name: "Nursery", Duration: "25 Days", StartDay: 0, Icon: "🌱",
				Thumb:       "https://images.unsplash.com/photo-1599583198650-68897597950c?auto=format&fit=crop&q=80&w=200",
				Description: "Preparing seedlings.",
				Tasks:       []string{"Seed Bed Prep", "Sowing"}},
			{ID: "2", Name: "Transplanting", Duration: "Day 25", StartDay: 25, Icon: "🚜",
				Thumb:       "https://images.unsplash.com/photo-1625246333195-5840507c8870?auto=format&fit=crop&q=80&w=200",
				Description: "Moving to main field.",
				Tasks:       []string{"Puddling", "Transplanting"}},
			{ID: "3", Name: "Tillering", Duration: "30-60 Days", StartDay: 30, Icon: "🌿",
				Thumb:       "https://images.unsplash.com/photo-1536633310979-b854b866ed5f?auto=format&fit=crop&q=80&w=200",
				Description: "Active growth phase.",
				Tasks:       []string{"Water Level Maintenance", "Weeding"}},
			{ID: "4", Name: "Harvest", Duration: "130-140 Days", StartDay: 130, Icon: "🍚",
				Thumb:       "https://images.unsplash.com/photo-1500382017468-9049fed747ef?auto=format&fit=crop&q=80&w=200",
				Description: "Grains golden yellow.",
				Tasks:       []string{"Drain Water", "Harvest"}},
		},
		Tasks: []model.PlanTaskTemplate{
			{DayOffset: -5, Title: "Seed Treatment", Description: "Treat seeds with Carbendazim.", Quantity: "2g/kg seed", Category: model.CategoryPesticide},
			{DayOffset: 0, Title: "Transplanting", Description: "Transplant 2-3 seedlings per hill.", Quantity: "Main Field", Category: model.CategoryHarvest},
			{DayOffset: 5, Title: "Maintain Water", Description: "Keep 2-3cm water level.", Quantity: "Continuous", Category: model.CategoryIrrigation},
			{DayOffset: 45, Title: "Zinc Application", Description: "Prevent Khaira disease.", Quantity: "5kg/acre", Category: model.CategoryFertilizer},
			{DayOffset: 70, Title: "Stem Borer Check", Description: "Look for dead hearts in crop.", Quantity: "Visual", Category: model.CategoryPesticide},
		},
	},
	"Cotton": {
		Crop:         "Cotton",
		DurationDays: 160,
		Stages: []model.PlanStageTemplate{
			{ID: "1", Name: "Sowing", Duration: "10 Days", StartDay: 0, Icon: "🌱",
				Thumb:       "https://images.unsplash.com/photo-1594903330656-11f26771d906?auto=format&fit=crop&q=80&w=200",
				Description: "Germination phase.",
				Tasks:       []string{"Dibbling"}},
			{ID: "2", Name: "Vegetative", Duration: "45 Days", StartDay: 15, Icon: "🌿",
				Thumb:       "https://images.unsplash.com/photo-1605000797499-95a51c5269ae?auto=format&fit=crop&q=80&w=200",
				Description: "Branching starts.",
				Tasks:       []string{"Thinning", "Weeding"}},
			{ID: "3", Name: "Flowering", Duration: "60-90 Days", StartDay: 60, Icon: "🌼",
				Thumb:       "https://images.unsplash.com/photo-1593348637654-e06927909247?auto=format&fit=crop&q=80&w=200",
				Description: "Square formation.",
				Tasks:       []string{"Pest Control"}},
			{ID: "4", Name: "Boll Burst", Duration: "140+ Days", StartDay: 140, Icon: "☁️",
				Thumb:       "https://images.unsplash.com/photo-1582236893779-199677579893?auto=format&fit=crop&q=80&w=200",
				Description: "Ready for picking.",
				Tasks:       []string{"Picking"}},
		},
		Tasks: []model.PlanTaskTemplate{
			{DayOffset: 0, Title: "Sowing", Description: "Sow Bt Cotton seeds.", Quantity: "2 packets/acre", Category: model.CategoryHarvest},
			{DayOffset: 20, Title: "Gap Filling", Description: "Re-sow where germination failed.", Quantity: "-", Category: model.CategoryHarvest},
			{DayOffset: 45, Title: "Sucking Pest Spray", Description: "Control Aphids/Jassids.", Quantity: "Neem Oil", Category: model.CategoryPesticide},
			{DayOffset: 60, Title: "Magnesium Sulfate", Description: "Correct reddening of leaves.", Quantity: "10kg/acre", Category: model.CategoryFertilizer},
			{DayOffset: 90, Title: "Pink Bollworm Trap", Description: "Install Pheromone traps.", Quantity: "5/acre", Category: model.CategoryPesticide},
		},
	},
	"Soybean": {
		Crop:         "Soybean",
		DurationDays: 100,
		Stages: []model.PlanStageTemplate{
			{ID: "1", Name: "Sowing", Duration: "5 Days", StartDay: 0, Icon: "🌱",
				Thumb:       "https://images.unsplash.com/photo-1550989460-0adf9ea622e2?auto=format&fit=crop&q=80&w=200",
				Description: "Seed germination."},
			{ID: "2", Name: "Vegetative", Duration: "30 Days", StartDay: 10, Icon: "🌿",
				Thumb:       "https://images.unsplash.com/photo-1615485925694-a03cb797d542?auto=format&fit=crop&q=80&w=200",
				Description: "Leaf growth.",
				Tasks:       []string{"Weed Control"}},
			{ID: "3", Name: "Pod Formation", Duration: "60 Days", StartDay: 50, Icon: "🥜",
				Thumb:       "https://images.unsplash.com/photo-1526346698789-22fd84314424?auto=format&fit=crop&q=80&w=200",
				Description: "Pod filling.",
				Tasks:       []string{"Insect Control"}},
			{ID: "4", Name: "Maturity", Duration: "95-100 Days", StartDay: 95, Icon: "🍂",
				Thumb:       "https://images.unsplash.com/photo-1626262923675-296439294522?auto=format&fit=crop&q=80&w=200",
				Description: "Leaves yellowing.",
				Tasks:       []string{"Harvest"}},
		},
		Tasks: []model.PlanTaskTemplate{
			{DayOffset: 0, Title: "Sowing", Description: "Ensure adequate soil moisture.", Quantity: "30kg/acre", Category: model.CategoryHarvest},
			{DayOffset: 15, Title: "Post-Emerge Herbicide", Description: "Control broadleaf weeds.", Quantity: "Imazethapyr", Category: model.CategoryPesticide},
			{DayOffset: 35, Title: "Flower Initiation", Description: "Monitor for caterpillars.", Quantity: "Visual", Category: model.CategoryPesticide},
			{DayOffset: 60, Title: "Pod Borer Spray", Description: "Apply if threshold crossed.", Quantity: "Quinalphos", Category: model.CategoryPesticide},
		},
	},
	"Mustard": {
		Crop:         "Mustard",
		DurationDays: 110,
		Stages: []model.PlanStageTemplate{
			{ID: "1", Name: "Sowing", Duration: "5 Days", StartDay: 0, Icon: "🌱",
				Thumb:       "https://images.unsplash.com/photo-1500382017468-9049fed747ef?auto=format&fit=crop&q=80&w=200",
				Description: "Sowing time."},
			{ID: "2", Name: "Rosette", Duration: "25 Days", StartDay: 20, Icon: "🥬",
				Thumb:       "https://images.unsplash.com/photo-1591192866976-5917865239a5?auto=format&fit=crop&q=80&w=200",
				Description: "Leaf development.",
				Tasks:       []string{"Thinning"}},
			{ID: "3", Name: "Flowering", Duration: "50-60 Days", StartDay: 50, Icon: "🌼",
				Thumb:       "https://images.unsplash.com/photo-1460500063983-994d4c27756c?auto=format&fit=crop&q=80&w=200",
				Description: "Yellow bloom.",
				Tasks:       []string{"Aphid Watch"}},
			{ID: "4", Name: "Pod Fill", Duration: "80-100 Days", StartDay: 80, Icon: "🌾",
				Thumb:       "https://images.unsplash.com/photo-1473215260273-df2fb7072a2a?auto=format&fit=crop&q=80&w=200",
				Description: "Siliqua formation.",
				Tasks:       []string{"Irrigation Stop"}},
		},
		Tasks: []model.PlanTaskTemplate{
			{DayOffset: 0, Title: "Sowing", Description: "Line sowing is preferred.", Quantity: "2kg/acre", Category: model.CategoryHarvest},
			{DayOffset: 25, Title: "Thinning", Description: "Maintain plant population.", Quantity: "15cm gap", Category: model.CategoryHarvest},
			{DayOffset: 35, Title: "First Irrigation", Description: "Before flowering starts.", Quantity: "Moderate", Category: model.CategoryIrrigation},
			{DayOffset: 55, Title: "Aphid Control", Description: "Spray if infestation seen.", Quantity: "Dimethoate", Category: model.CategoryPesticide},
		},
	},
	"Maize": {
		Crop:         "Maize",
		DurationDays: 110,
		Stages: []model.PlanStageTemplate{
			{ID: "1", Name: "Sowing", Duration: "5 Days", StartDay: 0, Icon: "🌽",
				Thumb:       "https://images.unsplash.com/photo-1551754655-cd27e38d2076?auto=format&fit=crop&q=80&w=200",
				Description: "Seed planting."},
			{ID: "2", Name: "Knee High", Duration: "30-40 Days", StartDay: 35, Icon: "🌿",
				Thumb:       "https://images.unsplash.com/photo-1622115277334-a2928c049b43?auto=format&fit=crop&q=80&w=200",
				Description: "Rapid growth.",
				Tasks:       []string{"Top Dressing"}},
			{ID: "3", Name: "Tasseling", Duration: "55-65 Days", StartDay: 60, Icon: "🌾",
				Thumb:       "https://images.unsplash.com/photo-1614266395982-d82054238779?auto=format&fit=crop&q=80&w=200",
				Description: "Male flower emergence.",
				Tasks:       []string{"Irrigation"}},
			{ID: "4", Name: "Harvest", Duration: "100+ Days", StartDay: 100, Icon: "🌽",
				Thumb:       "https://images.unsplash.com/photo-1597816760432-6a8dd2df74b2?auto=format&fit=crop&q=80&w=200",
				Description: "Cob maturity.",
				Tasks:       []string{"Harvest"}},
		},
		Tasks: []model.PlanTaskTemplate{
			{DayOffset: 0, Title: "Sowing", Description: "Ridge and furrow method.", Quantity: "8kg/acre", Category: model.CategoryHarvest},
			{DayOffset: 20, Title: "Fall Armyworm Check", Description: "Check whorls for larva.", Quantity: "Visual", Category: model.CategoryPesticide},
			{DayOffset: 30, Title: "Urea Application", Description: "Knee high stage.", Quantity: "30kg/acre", Category: model.CategoryFertilizer},
			{DayOffset: 60, Title: "Critical Irrigation", Description: "Silking/Tasseling stage.", Quantity: "High", Category: model.CategoryIrrigation},
		},
	},
}
