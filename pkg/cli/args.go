package cli

import (
	"strconv"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/models"
)

func parseBatchID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, apperrors.Validationf("parse arguments", "invalid batch id %q", s)
	}
	return id, nil
}

func parseBatchIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseBatchID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDateFlag parses a YYYY-MM-DD flag value. An empty value means today.
func parseDateFlag(flag, value string) (models.Date, error) {
	if value == "" {
		return models.Today(), nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, apperrors.Validationf("parse flags", "--%s: %v", flag, err)
	}
	return d, nil
}
