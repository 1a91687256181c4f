package report

import (
	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/internal/ptree"
	"github.com/HadrienG2/benchmon/pkg/model"
)

// reportProcs builds the process tree and walks it. Build validates the
// whole batch before the first event, so a corrupt batch reports
// nothing rather than a truncated tree.
func reportProcs(log *zap.Logger, results []model.ProcResult) error {
	log.Debug("Processing process list...", zap.Int("count", len(results)))
	tree, err := ptree.Build(results)
	if err != nil {
		return err
	}
	return tree.Report(log)
}
