package catalog

import (
	"time"

	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// MarketQuotes returns the bundled commodity quotes. They serve as the cold
// fallback when no fresher snapshot is cached or stored.
func MarketQuotes() []model.MarketPrice {
	out := make([]model.MarketPrice, len(marketQuotes))
	copy(out, marketQuotes)
	return out
}

// SeedPosts returns the bundled community posts, newest first.
func SeedPosts(now time.Time) []model.Post {
	out := make([]model.Post, len(seedPosts))
	copy(out, seedPosts)
	for i := range out {
		out[i].CreatedAt = now.Add(-seedPostAges[i])
	}
	return out
}

// SeedZones returns the default irrigation zones created for a new farm.
func SeedZones(userID string) []model.IrrigationZone {
	out := make([]model.IrrigationZone, len(seedZones))
	copy(out, seedZones)
	for i := range out {
		out[i].UserID = userID
	}
	return out
}

// Insights returns the rotating advisory one-liners shown on the community feed.
func Insights() []string {
	out := make([]string, len(insights))
	copy(out, insights)
	return out
}

var marketQuotes = []model.MarketPrice{
	{
		Name:           "Wheat",
		Price:          2450.50,
		Change:         2.4,
		Unit:           "Quintal",
		Mandi:          "Pune APMC",
		Recommendation: model.AdviceSell,
		Reason:         "Prices are at a 60-day high due to low regional supply. Market analysts expect a slight dip next week.",
		Image:          "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?auto=format&fit=crop&q=80&w=200",
		History: []model.PricePoint{
			{Date: "Oct 01", Value: 2350}, {Date: "Oct 03", Value: 2380},
			{Date: "Oct 05", Value: 2410}, {Date: "Oct 07", Value: 2400},
			{Date: "Oct 09", Value: 2380}, {Date: "Oct 11", Value: 2420},
			{Date: "Oct 13", Value: 2450}, {Date: "Oct 15", Value: 2460},
		},
		StorageAdvice: &model.StorageAdvice{
			SafeDuration:  "3 Weeks",
			ProjectedGain: "+₹120/Q",
			Condition:     "Low moisture detected. Safe to store.",
		},
		Alternatives: []model.AlternativeMandi{
			{Mandi: "Sangli Mandi", Price: 2600.00, Distance: "45km"},
			{Mandi: "Satara Market", Price: 2480.00, Distance: "20km"},
		},
	},
	{
		Name:           "Soybean",
		Price:          4820.20,
		Change:         -1.2,
		Unit:           "Quintal",
		Mandi:          "Akola Mandi",
		Recommendation: model.AdviceWait,
		Reason:         "Current downward trend is temporary. Export demand is projected to rise by 15% in the next two weeks.",
		Image:          "https://images.unsplash.com/photo-1550989460-0adf9ea622e2?auto=format&fit=crop&q=80&w=200",
		History: []model.PricePoint{
			{Date: "Oct 01", Value: 4920}, {Date: "Oct 03", Value: 4900},
			{Date: "Oct 05", Value: 4880}, {Date: "Oct 07", Value: 4850},
			{Date: "Oct 09", Value: 4830}, {Date: "Oct 11", Value: 4840},
			{Date: "Oct 13", Value: 4820}, {Date: "Oct 15", Value: 4810},
		},
		StorageAdvice: &model.StorageAdvice{
			SafeDuration:  "2 Months",
			ProjectedGain: "+₹450/Q",
			Condition:     "Global demand rising. Hold stock.",
		},
		Alternatives: []model.AlternativeMandi{
			{Mandi: "Nagpur APMC", Price: 4850.00, Distance: "120km"},
		},
	},
	{
		Name:           "Corn",
		Price:          1882.00,
		Change:         0.5,
		Unit:           "Quintal",
		Mandi:          "Sangli Mandi",
		Recommendation: model.AdviceSell,
		Reason:         "Stable prices right now. While no major surge is expected, current rates cover a healthy margin above the MSP.",
		Image:          "https://images.unsplash.com/photo-1551754655-cd27e38d2076?auto=format&fit=crop&q=80&w=200",
		History: []model.PricePoint{
			{Date: "Oct 01", Value: 1850}, {Date: "Oct 03", Value: 1860},
			{Date: "Oct 05", Value: 1870}, {Date: "Oct 07", Value: 1865},
			{Date: "Oct 09", Value: 1875}, {Date: "Oct 11", Value: 1880},
			{Date: "Oct 13", Value: 1882}, {Date: "Oct 15", Value: 1885},
		},
	},
}

var seedPosts = []model.Post{
	{
		ID:       "1",
		Type:     model.PostExpert,
		Author:   "Dr. Rajesh Patil",
		Role:     "Agricultural Scientist",
		Tag:      "Alert",
		Avatar:   "https://images.unsplash.com/photo-1539571696357-5a69c17a67c6?auto=format&fit=crop&q=80&w=150",
		Content:  "Heavy rainfall expected this week. All Wheat and Cotton farmers should ensure proper drainage immediately.",
		Likes:    45,
		Comments: 12,
		CropTags: []string{"Wheat", "Cotton"},
	},
	{
		ID:       "2",
		Type:     model.PostOfficial,
		Author:   "AgriSmart Admin",
		Role:     "Official News",
		Tag:      "Subsidy",
		Avatar:   "https://images.unsplash.com/photo-1519085360753-af0119f7cbe7?auto=format&fit=crop&q=80&w=150",
		Content:  "New 50% subsidy for drip irrigation announced. Apply by Jan 15th via the Irrigation dashboard.",
		Likes:    128,
		Comments: 34,
		CropTags: []string{"All"},
	},
	{
		ID:       "3",
		Type:     model.PostFarmer,
		Author:   "Suresh Kumar",
		Role:     "Wheat Farmer",
		Tag:      "Question",
		Avatar:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&q=80&w=150",
		Content:  "Best time for urea application on 40-day wheat? Seeing some yellow tips lately.",
		Likes:    8,
		Comments: 15,
		CropTags: []string{"Wheat"},
	},
	{
		ID:       "4",
		Type:     model.PostExpert,
		Author:   "Anita Deshmukh",
		Role:     "Plant Pathologist",
		Tag:      "Pest Control",
		Avatar:   "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?auto=format&fit=crop&q=80&w=150",
		Content:  "Yellowing in wheat tips could be initial signs of Rust. Recommend a preventive spray of Mancozeb.",
		Likes:    22,
		Comments: 4,
		CropTags: []string{"Wheat"},
	},
	{
		ID:       "5",
		Type:     model.PostFarmer,
		Author:   "Vikram Singh",
		Role:     "Rice Farmer",
		Tag:      "Question",
		Avatar:   "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&q=80&w=150",
		Content:  "Is anyone else using the new organic pesticide from AgriSmart? Looking for feedback on effectiveness.",
		Likes:    3,
		Comments: 2,
		CropTags: []string{"Rice", "General"},
	},
}

// seedPostAges positions the bundled posts relative to "now" so the feed
// sorts newest first on a fresh database.
var seedPostAges = []time.Duration{
	2 * time.Hour,
	5 * time.Hour,
	24 * time.Hour,
	3 * time.Hour,
	6 * time.Hour,
}

var seedZones = []model.IrrigationZone{
	{ID: 1, Name: "North Field", Moisture: 32, Active: true, NextSchedule: "06:00 AM",
		Image: "https://images.unsplash.com/photo-1592939331610-85f269a9b251?auto=format&fit=crop&q=80&w=200"},
	{ID: 2, Name: "East Field", Moisture: 45, Active: false, NextSchedule: "08:00 AM",
		Image: "https://images.unsplash.com/photo-1464306208223-e0b4495a5553?auto=format&fit=crop&q=80&w=200"},
	{ID: 3, Name: "Greenhouse", Moisture: 68, Active: false, NextSchedule: "Manual",
		Image: "https://images.unsplash.com/photo-1585320806297-9794b3e4eeae?auto=format&fit=crop&q=80&w=200"},
}

var insights = []string{
	"Urea absorption is highest when applied during late evening hours (18:00 - 20:00).",
	"Drip irrigation subsidies closing in 5 days. Apply now for priority processing.",
	"High humidity alert! Monitor potato crops for late blight fungal signs.",
}
