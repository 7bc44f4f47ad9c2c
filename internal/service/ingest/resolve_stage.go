package ingest

import "github.com/victorazesc/appseed-sub000/internal/domain"

// resolveStage picks the stage a submission lands in: a case-insensitive
// name match of requested, then the pipeline's default stage if it is still
// one of stages, then the lowest position.
func resolveStage(p domain.Pipeline, stages []domain.Stage, requested *string) (domain.Stage, error) {
	if len(stages) == 0 {
		return domain.Stage{}, domain.NewValidationError("stage", "no stages")
	}

	if requested != nil {
		for _, s := range stages {
			if domain.SameName(s.Name, *requested) {
				return s, nil
			}
		}
	}

	if p.DefaultStageID != nil {
		if s, ok := domain.FindStage(stages, *p.DefaultStageID); ok {
			return s, nil
		}
	}

	first, _ := domain.FirstStage(stages)
	return first, nil
}
