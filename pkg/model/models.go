package model

import "time"

// Season is an Indian cropping season.
type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonZaid   Season = "Zaid"
)

// WaterNeed classifies how much irrigation a crop requires.
type WaterNeed string

const (
	WaterNeedLow      WaterNeed = "Low"
	WaterNeedModerate WaterNeed = "Moderate"
	WaterNeedHigh     WaterNeed = "High"
)

// RiskLevel grades cultivation risk. Also used for pest susceptibility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// WaterSource is the farm's primary water supply.
type WaterSource string

const (
	WaterSourceBorewell WaterSource = "Well/Borewell"
	WaterSourceCanal    WaterSource = "Canal"
	WaterSourceRainFed  WaterSource = "Rain-fed"
	WaterSourcePond     WaterSource = "Pond/Tank"
)

// CropRecord is a static catalog entry. Loaded once at startup, never mutated.
type CropRecord struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Seasons            []Season  `json:"seasons"`
	WaterNeed          WaterNeed `json:"water_need"`
	BaseCost           int       `json:"base_cost"`    // rupees per acre
	MarketPrice        int       `json:"market_price"` // rupees per quintal
	YieldMin           int       `json:"yield_min"`    // quintals per acre
	YieldMax           int       `json:"yield_max"`    // quintals per acre
	BaseRisk           RiskLevel `json:"base_risk"`
	PestSusceptibility RiskLevel `json:"pest_susceptibility"`
	DurationDays       int       `json:"duration_days"`
	Icon               string    `json:"icon"`
	Image              string    `json:"image"`
}

// SoilReading holds soil-health-card values. Raw strings as entered by the
// farmer; the recommendation engine parses nitrogen leniently.
type SoilReading struct {
	N         string  `json:"n"`
	P         string  `json:"p"`
	K         string  `json:"k"`
	PH        string  `json:"ph"`
	CardImage *string `json:"card_image,omitempty"` // blob path of the scanned card
}

// FarmerProfile is the onboarding output consumed by the recommendation engine.
type FarmerProfile struct {
	UserID         string       `json:"user_id"`
	Name           string       `json:"name"`
	Village        string       `json:"village" validate:"required"`
	LandSize       float64      `json:"land_size" validate:"gt=0"`
	LandUnit       string       `json:"land_unit" validate:"oneof=Acres Hectares"`
	IrrigationType string       `json:"irrigation_type"`
	WaterSource    WaterSource  `json:"water_source" validate:"required"`
	Latitude       float64      `json:"latitude"`
	Longitude      float64      `json:"longitude"`
	Soil           *SoilReading `json:"soil,omitempty"`
	ActiveCrop     *string      `json:"active_crop,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// RecommendedCrop is derived from (profile, catalog, month). Never persisted.
type RecommendedCrop struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Icon               string    `json:"icon"`
	Image              string    `json:"image"`
	ExpectedProfit     string    `json:"expected_profit"` // formatted, e.g. "₹38,000"
	RawProfit          int       `json:"raw_profit"`
	RiskLevel          RiskLevel `json:"risk_level"`
	Duration           string    `json:"duration"`
	Cost               string    `json:"cost"`
	WaterRequirement   WaterNeed `json:"water_requirement"`
	PestSusceptibility RiskLevel `json:"pest_susceptibility"`
	Yield              string    `json:"yield"` // e.g. "18-22 Q/acre"
	SellingPrice       string    `json:"selling_price"`
}

// StageStatus is derived from the stage's start-day offset.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageActive    StageStatus = "active"
	StageUpcoming  StageStatus = "upcoming"
)

// CropStage is one step of a crop plan timeline. Generated fresh per plan.
type CropStage struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Duration    string      `json:"duration"`
	StartDay    int         `json:"start_day"`
	Progress    int         `json:"progress"`
	Status      StageStatus `json:"status"`
	Tasks       []string    `json:"tasks"`
	Icon        string      `json:"icon"`
	Thumb       string      `json:"thumb"`
	Description string      `json:"description"`
}

// TaskStatus is the lifecycle state of a farm task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskUpcoming  TaskStatus = "upcoming"
	TaskCompleted TaskStatus = "completed"
	TaskMissed    TaskStatus = "missed"
	TaskRemind    TaskStatus = "remind"
)

// TaskCategory tags a task with the kind of field work it involves.
type TaskCategory string

const (
	CategoryFertilizer TaskCategory = "fertilizer"
	CategoryIrrigation TaskCategory = "irrigation"
	CategoryPesticide  TaskCategory = "pesticide"
	CategoryHarvest    TaskCategory = "harvest"
)

// FarmTask is a dated unit of field work for the active crop. Generated from a
// template once per (user, crop) and persisted; status is the only mutable field.
type FarmTask struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	QuantitySuggestion string       `json:"quantity_suggestion"`
	Status             TaskStatus   `json:"status"`
	DueDate            string       `json:"due_date"` // short date, e.g. "2 Jan"
	Category           TaskCategory `json:"category"`
}

// PlanStageTemplate describes a plan stage before statuses are resolved
// against "day 0" (sowing).
type PlanStageTemplate struct {
	ID          string
	Name        string
	Duration    string
	StartDay    int
	Icon        string
	Thumb       string
	Description string
	Tasks       []string
}

// PlanTaskTemplate describes a scheduled task relative to sowing day.
type PlanTaskTemplate struct {
	DayOffset   int
	Title       string
	Description string
	Quantity    string
	Category    TaskCategory
}

// PlanTemplate is the full schedule blueprint for one crop.
type PlanTemplate struct {
	Crop         string
	DurationDays int
	Stages       []PlanStageTemplate
	Tasks        []PlanTaskTemplate
}

// MarketAdvice is the sell/hold recommendation attached to a market price.
type MarketAdvice string

const (
	AdviceSell MarketAdvice = "SELL"
	AdviceWait MarketAdvice = "WAIT"
)

// PricePoint is one observation in a commodity's price history.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// StorageAdvice suggests whether holding stock is worthwhile.
type StorageAdvice struct {
	SafeDuration  string `json:"safe_duration"`
	ProjectedGain string `json:"projected_gain"`
	Condition     string `json:"condition"`
}

// AlternativeMandi is a nearby market with a different quoted price.
type AlternativeMandi struct {
	Mandi    string  `json:"mandi"`
	Price    float64 `json:"price"`
	Distance string  `json:"distance"`
}

// MarketPrice is a commodity quote at a mandi with history and advice.
type MarketPrice struct {
	Name           string             `json:"name"`
	Price          float64            `json:"price"`
	Change         float64            `json:"change"`
	Unit           string             `json:"unit"`
	Mandi          string             `json:"mandi"`
	Recommendation MarketAdvice       `json:"recommendation"`
	Reason         string             `json:"reason"`
	Image          string             `json:"img"`
	History        []PricePoint       `json:"history"`
	StorageAdvice  *StorageAdvice     `json:"storage_advice,omitempty"`
	Alternatives   []AlternativeMandi `json:"alternatives,omitempty"`
}

// PostType classifies who authored a community post.
type PostType string

const (
	PostExpert   PostType = "expert"
	PostOfficial PostType = "official"
	PostFarmer   PostType = "farmer"
)

// Post is a community feed entry.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Type      PostType  `json:"type"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Tag       string    `json:"tag"`
	Avatar    string    `json:"avatar"`
	CropTags  []string  `json:"crop_tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationType is a closed set of notification variants.
type NotificationType string

const (
	NotifSystem  NotificationType = "system"
	NotifLike    NotificationType = "like"
	NotifComment NotificationType = "comment"
	NotifPost    NotificationType = "post"
)

// Notification is an in-app alert delivered to one user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Avatar    string           `json:"avatar,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// IrrigationZone is one controllable watering zone on the farm.
type IrrigationZone struct {
	ID           int       `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Moisture     int       `json:"moisture"` // percent
	Active       bool      `json:"active"`
	NextSchedule string    `json:"next_schedule"`
	Image        string    `json:"img"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AnalysisResult is the crop-health diagnosis returned by the AI scan.
// Displayed verbatim; the service does not second-guess the model's fields.
type AnalysisResult struct {
	Diagnosis       string   `json:"diagnosis"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
	Treatment       string   `json:"treatment"`
}

// ScanRecord ties a stored scan image to its diagnosis.
type ScanRecord struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	ImagePath string         `json:"image_path"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

// User is an authenticated account keyed by phone number. The phone is
// stored encrypted; the hash column exists only for lookups.
type User struct {
	ID             string    `json:"id"`
	PhoneEncrypted string    `json:"-"`
	PhoneHash      string    `json:"-"`
	Language       string    `json:"language"`
	CreatedAt      time.Time `json:"created_at"`
	LastLoginAt    time.Time `json:"last_login_at"`
}

// Report is a generated seasonal farm report stored as a PDF.
type Report struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Crop        string    `json:"crop"`
	FilePath    string    `json:"file_path"`
	GeneratedAt time.Time `json:"generated_at"`
}
