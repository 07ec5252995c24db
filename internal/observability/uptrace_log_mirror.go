package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

const (
	logMirrorScope    = "automatic-tournament/internal/platform/logging"
	mirrorValueDepth  = 3
	requestLogMessage = "http request"
)

// quietPaths are request lines never shipped to Uptrace. Probes hit them
// every few seconds.
var quietPaths = []string{"/healthz"}

func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	emitter := otelglobal.Logger(logMirrorScope, otellog.WithInstrumentationVersion(serviceVersion))

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if skipMirroredLog(msg, args) {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}

		severity := mirrorSeverity(level)
		if !emitter.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		var record otellog.Record
		now := time.Now().UTC()
		record.SetTimestamp(now)
		record.SetObservedTimestamp(now)
		record.SetSeverity(severity)
		record.SetSeverityText(strings.ToUpper(level.String()))
		record.SetEventName(msg)
		record.SetBody(otellog.StringValue(msg))
		if attrs := mirrorAttributes(args); len(attrs) > 0 {
			record.AddAttributes(attrs...)
		}
		emitter.Emit(ctx, record)
	}
}

func skipMirroredLog(msg string, args []any) bool {
	if msg != requestLogMessage {
		return false
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, _ := args[i].(string); key == "path" {
			path, _ := args[i+1].(string)
			return slices.Contains(quietPaths, path)
		}
	}
	return false
}

// mirrorAttributes pairs zap-style key/value args. A dangling key becomes an
// empty attribute and a non-string key is named by its position.
func mirrorAttributes(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}

	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: mirrorValue(args[i+1], 0)})
	}
	return attrs
}

func mirrorSeverity(level zapcore.Level) otellog.Severity {
	switch {
	case level <= zapcore.DebugLevel:
		return otellog.SeverityDebug
	case level == zapcore.InfoLevel:
		return otellog.SeverityInfo
	case level == zapcore.WarnLevel:
		return otellog.SeverityWarn
	case level >= zapcore.DPanicLevel:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityError
	}
}

func mirrorValue(value any, depth int) otellog.Value {
	if value == nil {
		return otellog.Value{}
	}
	if depth >= mirrorValueDepth {
		return otellog.StringValue(fmt.Sprint(value))
	}

	switch v := value.(type) {
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case []byte:
		return otellog.BytesValue(slices.Clone(v))
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case time.Duration, error, fmt.Stringer:
		return otellog.StringValue(fmt.Sprint(v))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return otellog.Int64Value(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return otellog.Int64Value(int64(u))
		}
		return otellog.StringValue(fmt.Sprint(value))
	case reflect.Float32, reflect.Float64:
		return otellog.Float64Value(rv.Float())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return mirrorValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		items := make([]otellog.Value, rv.Len())
		for i := range items {
			items[i] = mirrorValue(rv.Index(i).Interface(), depth+1)
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return otellog.StringValue(fmt.Sprint(value))
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
		kvs := make([]otellog.KeyValue, 0, len(keys))
		for _, k := range keys {
			kvs = append(kvs, otellog.KeyValue{Key: k.String(), Value: mirrorValue(rv.MapIndex(k).Interface(), depth+1)})
		}
		return otellog.MapValue(kvs...)
	default:
		return otellog.StringValue(fmt.Sprint(value))
	}
}
