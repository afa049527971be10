package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette is one console colour theme
type palette struct {
	fg        string
	time      string
	component string
	key       string
	number    string
	symbol    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

var themes = map[string]palette{
	// Everforest Dark (natural forest greens)
	"everforest": {
		fg:        "\x1b[38;5;223m",
		time:      "\x1b[38;5;107m",
		component: "\x1b[38;5;208m",
		key:       "\x1b[38;5;65m",
		number:    "\x1b[38;5;108m",
		symbol:    "\x1b[38;5;108m",
		warn:      "\x1b[38;5;179m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;52m",
	},
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		fg:        "\x1b[38;5;223m",
		time:      "\x1b[38;5;108m",
		component: "\x1b[38;5;214m",
		key:       "\x1b[38;5;109m",
		number:    "\x1b[38;5;175m",
		symbol:    "\x1b[38;5;142m",
		warn:      "\x1b[38;5;214m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;88m",
	},
}

var currentTheme = "everforest"

// SetTheme configures the colour scheme for console log output.
// Unknown themes are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

// Theme returns the active theme name
func Theme() string {
	return currentTheme
}

func colors() palette {
	return themes[currentTheme]
}

// minimalEncoder is a compact console encoder:
// "13:04:35  rulebase.watch  reloaded  ✿  rulebase=economy rules=6"
type minimalEncoder struct {
	zapcore.Encoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	if lvl := levelString(ent.Level, c); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component + ent.LoggerName + colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg + ent.Message + colorReset)

	if rendered := renderFields(fields, c); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// levelString shows WARN and above; debug and info stay unlabelled
func levelString(level zapcore.Level, c palette) string {
	switch {
	case level == zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case level >= zapcore.ErrorLevel:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	case level == zapcore.DebugLevel:
		return c.key + "debug" + colorReset
	default:
		return ""
	}
}

// renderFields renders every field as key=value, in order.
// The symbol field is rendered bare in front.
func renderFields(fields []zapcore.Field, c palette) string {
	var symbol string
	parts := make([]string, 0, len(fields))

	for _, f := range fields {
		val, ok := fieldValue(f)
		if !ok {
			continue
		}
		if f.Key == FieldSymbol {
			symbol = c.symbol + val + colorReset
			continue
		}
		color := c.fg
		if isNumeric(f.Type) {
			color = c.number
		}
		parts = append(parts, c.key+f.Key+"="+colorReset+color+val+colorReset)
	}

	if symbol != "" {
		parts = append([]string{symbol}, parts...)
	}
	return strings.Join(parts, " ")
}

// fieldValue renders a single field's value. ok is false for skipped fields.
func fieldValue(f zapcore.Field) (string, bool) {
	if f.Type == zapcore.SkipType {
		return "", false
	}
	m := zapcore.NewMapObjectEncoder()
	f.AddTo(m)
	v, ok := m.Fields[f.Key]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%v", v), true
}

func isNumeric(t zapcore.FieldType) bool {
	switch t {
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type,
		zapcore.Float64Type, zapcore.Float32Type, zapcore.DurationType:
		return true
	}
	return false
}
