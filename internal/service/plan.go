package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// activeStageWindow is the first N days of a plan during which the opening
// stage counts as active.
const activeStageWindow = 10

// dueDateLayout renders task due dates the way the app shows them, e.g. "2 Jan".
const dueDateLayout = "2 Jan"

// PlanService builds seasonal crop plans from the template catalog.
type PlanService struct {
	logger *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(logger *zap.Logger) *PlanService {
	return &PlanService{logger: logger}
}

// Stages resolves a crop's stage timeline against a plan starting now.
// Crops without a template of their own get the default timeline.
func (s *PlanService) Stages(crop string, now time.Time) []model.CropStage {
	template, exact := catalog.Template(crop)
	if !exact {
		s.logger.Warn("no plan template for crop, using default",
			zap.String("crop", crop),
			zap.String("default", catalog.DefaultTemplateCrop),
		)
	}

	stages := make([]model.CropStage, 0, len(template.Stages))
	for _, st := range template.Stages {
		stages = append(stages, model.CropStage{
			ID:          st.ID,
			Name:        st.Name,
			Duration:    st.Duration,
			StartDay:    st.StartDay,
			Progress:    stageProgress(st.StartDay),
			Status:      stageStatus(st.StartDay),
			Tasks:       st.Tasks,
			Icon:        st.Icon,
			Thumb:       st.Thumb,
			Description: st.Description,
		})
	}
	return stages
}

// GenerateTasks materializes a crop's task schedule with due dates relative
// to now. Same crop and day always produce the same list.
func (s *PlanService) GenerateTasks(crop string, now time.Time) []model.FarmTask {
	template, _ := catalog.Template(crop)

	tasks := make([]model.FarmTask, 0, len(template.Tasks))
	for i, tt := range template.Tasks {
		tasks = append(tasks, model.FarmTask{
			ID:                 fmt.Sprintf("gen_%d", i),
			Title:              tt.Title,
			Description:        tt.Description,
			QuantitySuggestion: tt.Quantity,
			Status:             initialTaskStatus(tt.DayOffset),
			DueDate:            now.AddDate(0, 0, tt.DayOffset).Format(dueDateLayout),
			Category:           tt.Category,
		})
	}

	s.logger.Info("plan tasks generated",
		zap.String("crop", crop),
		zap.Int("count", len(tasks)),
	)
	return tasks
}

func stageStatus(startDay int) model.StageStatus {
	switch {
	case startDay < 0:
		return model.StageCompleted
	case startDay <= activeStageWindow:
		return model.StageActive
	default:
		return model.StageUpcoming
	}
}

func stageProgress(startDay int) int {
	switch stageStatus(startDay) {
	case model.StageCompleted:
		return 100
	case model.StageActive:
		return 10
	default:
		return 0
	}
}

// initialTaskStatus places a generated task on the timeline. Tasks dated
// before the plan existed are missed, not coin-flipped done.
func initialTaskStatus(dayOffset int) model.TaskStatus {
	switch {
	case dayOffset < 0:
		return model.TaskMissed
	case dayOffset == 0:
		return model.TaskPending
	default:
		return model.TaskUpcoming
	}
}
