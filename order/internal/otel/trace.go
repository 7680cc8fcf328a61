package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/krishimart/krishimart/internal/common/constants"
)

var Tracer = otel.Tracer(constants.APP_ORDER_SERVICE)
