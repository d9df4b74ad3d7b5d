package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// PDFGenerator renders seasonal farm reports
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// ReportData contains all data needed for report generation
type ReportData struct {
	FarmerName      string
	Village         string
	Crop            string
	LandSize        float64
	LandUnit        string
	Stages          []model.CropStage
	Tasks           []model.FarmTask
	Recommendations []model.RecommendedCrop
	MarketQuote     *model.MarketPrice
}

// Generate creates a PDF report from the provided data
func (g *PDFGenerator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating farm report",
		zap.String("farmer", data.FarmerName),
		zap.String("crop", data.Crop),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, "Seasonal Farm Report", data)
	g.addPlanTimeline(pdf, data.Stages)
	g.addTaskSummary(pdf, data.Tasks)
	g.addRecommendations(pdf, data.Recommendations)
	g.addMarketOutlook(pdf, data.MarketQuote)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("farm report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, title string, data *ReportData) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Farmer: %s, %s", data.FarmerName, data.Village), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Active Crop: %s", data.Crop), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Land: %.2f %s", data.LandSize, data.LandUnit), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addPlanTimeline adds the crop stage timeline section
func (g *PDFGenerator) addPlanTimeline(pdf *gofpdf.Fpdf, stages []model.CropStage) {
	g.addSectionHeader(pdf, "Crop Plan Timeline")

	if len(stages) == 0 {
		pdf.CellFormat(0, 8, "No plan generated yet.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, stage := range stages {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", stage.Name, stage.Duration), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Day %d - %s - %s", stage.StartDay, stage.Status, stage.Description), "", 1, "L", false, 0, "")
		for _, task := range stage.Tasks {
			pdf.CellFormat(0, 5, fmt.Sprintf("    - %s", task), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

// addTaskSummary adds the task list with statuses
func (g *PDFGenerator) addTaskSummary(pdf *gofpdf.Fpdf, tasks []model.FarmTask) {
	g.addSectionHeader(pdf, "Field Tasks")

	if len(tasks) == 0 {
		pdf.CellFormat(0, 8, "No tasks scheduled.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	done := 0
	for _, task := range tasks {
		if task.Status == model.TaskCompleted {
			done++
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("  [%s] %s (%s) - %s", task.Status, task.Title, task.DueDate, task.QuantitySuggestion), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Progress: %d of %d tasks completed", done, len(tasks)), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addRecommendations adds the crop recommendation table
func (g *PDFGenerator) addRecommendations(pdf *gofpdf.Fpdf, recs []model.RecommendedCrop) {
	g.addSectionHeader(pdf, "Crop Recommendations")

	if len(recs) == 0 {
		pdf.CellFormat(0, 8, "No recommendations available.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for i, rec := range recs {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s", i+1, rec.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Profit: %s/acre | Yield: %s | Risk: %s | Duration: %s", asciiCurrency(rec.ExpectedProfit), rec.Yield, rec.RiskLevel, rec.Duration), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addMarketOutlook adds the market advisory section
func (g *PDFGenerator) addMarketOutlook(pdf *gofpdf.Fpdf, quote *model.MarketPrice) {
	g.addSectionHeader(pdf, "Market Outlook")

	if quote == nil {
		pdf.CellFormat(0, 8, "No market data available.", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s at %s: Rs %.2f per %s (%+.1f%%)", quote.Name, quote.Mandi, quote.Price, quote.Unit, quote.Change), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("  Advice: %s", quote.Recommendation), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 5, fmt.Sprintf("  %s", quote.Reason), "", "L", false)
	if quote.StorageAdvice != nil {
		pdf.CellFormat(0, 5, fmt.Sprintf("  Storage: hold %s for %s. %s", quote.StorageAdvice.SafeDuration, asciiCurrency(quote.StorageAdvice.ProjectedGain), quote.StorageAdvice.Condition), "", 1, "L", false, 0, "")
	}
}

// asciiCurrency rewrites rupee amounts for the CP1252 core fonts, which
// cannot encode the rupee sign.
func asciiCurrency(s string) string {
	return strings.ReplaceAll(s, "₹", "Rs ")
}
