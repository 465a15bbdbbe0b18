// Package linear は gonum による線形モデルを提供する。
package linear

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibench/core/parallel"
	"github.com/YuminosukeSato/scibench/metrics"
	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Ridge は L2 正則化付き線形回帰モデル
//
//	min ||y - Xw - b||² + alpha ||w||²
type Ridge struct {
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	NFeatures int           // 特徴量の数

	alpha             float64
	fitIntercept      bool
	parallelThreshold int
	fitted            bool
}

// NewRidge は新しい Ridge モデルを作成する。既定値は alpha=1.0、切片あり。
func NewRidge(opts ...Option) *Ridge {
	r := &Ridge{
		alpha:             1.0,
		fitIntercept:      true,
		parallelThreshold: parallel.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsFitted は学習済みかどうかを返す
func (r *Ridge) IsFitted() bool { return r.fitted }

// Fit はモデルを訓練データで学習させる。
// 中心化したデータに対して (XᵀX + αI) w = Xᵀy をコレスキー分解で解く。
func (r *Ridge) Fit(X mat.Matrix, y mat.Vector) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Ridge.Fit")
	}
	if y.Len() != rows {
		return errors.NewDimensionError("Ridge.Fit", rows, y.Len(), 0)
	}
	if r.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", r.alpha)
	}

	xMean := make([]float64, cols)
	var yMean float64
	if r.fitIntercept {
		for j := 0; j < cols; j++ {
			xMean[j] = floats.Sum(mat.Col(nil, j, X)) / float64(rows)
		}
		for i := 0; i < rows; i++ {
			yMean += y.AtVec(i)
		}
		yMean /= float64(rows)
	}

	// 平均を引いたデータを作る。行数が閾値を超える場合は並列化。
	xc := mat.NewDense(rows, cols, nil)
	yc := mat.NewVecDense(rows, nil)
	_ = parallel.Run(rows, r.parallelThreshold, func(start, end int) error {
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				xc.Set(i, j, X.At(i, j)-xMean[j])
			}
			yc.SetVec(i, y.AtVec(i)-yMean)
		}
		return nil
	})

	var gram mat.SymDense
	gram.SymOuterK(1, xc.T())
	for j := 0; j < cols; j++ {
		gram.SetSym(j, j, gram.At(j, j)+r.alpha)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		return errors.Wrap(errors.ErrSingularMatrix, "Ridge.Fit")
	}

	var xty mat.VecDense
	xty.MulVec(xc.T(), yc)

	w := mat.NewVecDense(cols, nil)
	if err := chol.SolveVecTo(w, &xty); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "Ridge.Fit")
	}
	if err := errors.CheckNumericalStability("Ridge.Fit", w.RawVector().Data); err != nil {
		return err
	}

	r.Weights = w
	r.NFeatures = cols
	r.Intercept = 0
	if r.fitIntercept {
		r.Intercept = yMean - mat.Dot(w, mat.NewVecDense(cols, xMean))
	}
	r.fitted = true
	return nil
}

// Predict は入力データに対する予測を行う
func (r *Ridge) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !r.IsFitted() {
		return nil, errors.NewValueError("Ridge.Predict", "model is not fitted")
	}
	rows, cols := X.Dims()
	if cols != r.NFeatures {
		return nil, errors.NewDimensionError("Ridge.Predict", r.NFeatures, cols, 1)
	}

	// 予測: y = X * weights + intercept
	pred := mat.NewVecDense(rows, nil)
	_ = parallel.Run(rows, r.parallelThreshold, func(start, end int) error {
		for i := start; i < end; i++ {
			v := r.Intercept
			for j := 0; j < cols; j++ {
				v += X.At(i, j) * r.Weights.AtVec(j)
			}
			pred.SetVec(i, v)
		}
		return nil
	})
	return pred, nil
}

// Score はモデルの決定係数（R²）を計算する
func (r *Ridge) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, pred)
}
