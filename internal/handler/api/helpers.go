package api

import (
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
)

// errMissingIdentity signals a request that passed routing without the
// identity middleware having run.
var errMissingIdentity = errs.New("customer identity missing from context")

var errBadReportRange = errs.New("report range start must precede end")

func isNotFoundRead(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
