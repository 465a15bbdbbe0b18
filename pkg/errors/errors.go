// Package errors はベンチマークハーネス全体のエラーハンドリングと警告システムを提供します。
// すべてのエラーは cockroachdb/errors でスタックトレースが付与され、zerolog で構造化出力できます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("scibench-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、あるクラスの予測が一つもなく適合率の分母が0になる場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// OptionFallbackWarning はオプション文字列が解釈できず、既定値に戻した場合の警告です。
type OptionFallbackWarning struct {
	Method  string
	Options string
	Err     error
}

func (w *OptionFallbackWarning) Error() string {
	return fmt.Sprintf("%s: could not parse options %q, falling back to defaults: %v", w.Method, w.Options, w.Err)
}

func (w *OptionFallbackWarning) Unwrap() error {
	return w.Err
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *OptionFallbackWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("method", w.Method).
		Str("options", w.Options).
		AnErr("cause", w.Err).
		Str("type", "OptionFallbackWarning")
}

// NewOptionFallbackWarning は新しいOptionFallbackWarningを作成します。
func NewOptionFallbackWarning(method, options string, err error) *OptionFallbackWarning {
	return &OptionFallbackWarning{Method: method, Options: options, Err: err}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// DatasetShapeError は渡されたデータセットファイルの数がメソッドの要件と合わない場合のエラーです。
type DatasetShapeError struct {
	Method string
	Want   string // "three", "at least two" など
	Got    int
}

func (e *DatasetShapeError) Error() string {
	return fmt.Sprintf("scibench: %s: this method requires %s datasets (got %d)", e.Method, e.Want, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DatasetShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("method", e.Method).
		Str("want", e.Want).
		Int("got", e.Got).
		Str("type", "DatasetShapeError")
}

// NewDatasetShapeError は新しいDatasetShapeErrorを作成し、スタックトレースを付与します。
func NewDatasetShapeError(method, want string, got int) error {
	return errors.WithStack(&DatasetShapeError{Method: method, Want: want, Got: got})
}

// LoadError はデータセットファイルの読み込みに失敗した場合のエラーです。
// Line は1始まりで、ファイル単位の失敗（存在しないなど）では0です。
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("scibench: load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("scibench: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *LoadError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("line", e.Line).
		AnErr("cause", e.Err).
		Str("type", "LoadError")
}

// NewLoadError は新しいLoadErrorを作成し、スタックトレースを付与します。
func NewLoadError(path string, line int, err error) error {
	return errors.WithStack(&LoadError{Path: path, Line: line, Err: err})
}

// DelegateError は外部ライブラリやサブプロセスへの委譲が失敗した場合のエラーです。
type DelegateError struct {
	Method string
	Op     string
	Err    error
}

func (e *DelegateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scibench: %s: %s: %v", e.Method, e.Op, e.Err)
	}
	return fmt.Sprintf("scibench: %s: %s", e.Method, e.Op)
}

func (e *DelegateError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DelegateError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("method", e.Method).
		Str("operation", e.Op).
		AnErr("cause", e.Err).
		Str("type", "DelegateError")
}

// NewDelegateError は新しいDelegateErrorを作成し、スタックトレースを付与します。
func NewDelegateError(method, op string, err error) error {
	return errors.WithStack(&DelegateError{Method: method, Op: op, Err: err})
}

// TimerParseError はサブプロセスの出力から経過時間を読み取れなかった場合のエラーです。
type TimerParseError struct {
	Output string // 出力の末尾（最大256バイト）
	Reason string
}

func (e *TimerParseError) Error() string {
	return fmt.Sprintf("scibench: can't parse the timer: %s", e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TimerParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("output_tail", e.Output).
		Str("reason", e.Reason).
		Str("type", "TimerParseError")
}

// NewTimerParseError は新しいTimerParseErrorを作成し、スタックトレースを付与します。
func NewTimerParseError(output []byte, reason string) error {
	const maxTail = 256
	tail := output
	if len(tail) > maxTail {
		tail = tail[len(tail)-maxTail:]
	}
	return errors.WithStack(&TimerParseError{Output: string(tail), Reason: reason})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("scibench: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError はオプションなどの入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scibench: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切な場合に発生するエラーです（空の配列など）。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scibench: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrTimeout は委譲した処理が制限時間を超えた場合のエラーです。
	ErrTimeout = New("timeout expired")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")

	// ErrWorkspaceClosed は Close 済みのワークスペースを使おうとした場合のエラーです。
	ErrWorkspaceClosed = New("workspace closed")
)
