// Multi-class classification metrics computed from a confusion matrix.
// Every multi-class score is a macro average over the classes that appear
// in either the true or the predicted labels.

package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// ConfusionMatrix counts label pairs. Counts.At(i, j) is the number of
// samples whose true label is Classes[i] and whose predicted label is
// Classes[j].
type ConfusionMatrix struct {
	Classes []float64
	Counts  *mat.Dense
}

// NewConfusionMatrix builds the confusion matrix over the sorted union of
// labels found in yTrue and yPred.
func NewConfusionMatrix(yTrue, yPred []float64) (*ConfusionMatrix, error) {
	if err := checkPair("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability("ConfusionMatrix", append(append([]float64{}, yTrue...), yPred...)); err != nil {
		return nil, err
	}

	index := make(map[float64]int)
	for _, v := range yTrue {
		index[v] = 0
	}
	for _, v := range yPred {
		index[v] = 0
	}
	classes := make([]float64, 0, len(index))
	for v := range index {
		classes = append(classes, v)
	}
	sort.Float64s(classes)
	for i, v := range classes {
		index[v] = i
	}

	n := len(classes)
	counts := mat.NewDense(n, n, nil)
	for k := range yTrue {
		i, j := index[yTrue[k]], index[yPred[k]]
		counts.Set(i, j, counts.At(i, j)+1)
	}
	return &ConfusionMatrix{Classes: classes, Counts: counts}, nil
}

// Total returns the number of samples.
func (cm *ConfusionMatrix) Total() float64 {
	return mat.Sum(cm.Counts)
}

// classCounts returns the one-vs-rest counts for class i.
func (cm *ConfusionMatrix) classCounts(i int) (tp, fp, fn, tn float64) {
	tp = cm.Counts.At(i, i)
	fn = floats.Sum(mat.Row(nil, i, cm.Counts)) - tp
	fp = floats.Sum(mat.Col(nil, i, cm.Counts)) - tp
	tn = cm.Total() - tp - fp - fn
	return tp, fp, fn, tn
}

// AverageAccuracy は各クラスの one-vs-rest 正解率 (TP+TN)/N の平均を返す。
func AverageAccuracy(cm *ConfusionMatrix) float64 {
	n := cm.Total()
	return macro(cm, func(i int) float64 {
		tp, _, _, tn := cm.classCounts(i)
		return (tp + tn) / n
	})
}

// AvgPrecision はマクロ平均適合率を返す。予測が一つもないクラスは 0 として扱う。
func AvgPrecision(cm *ConfusionMatrix) float64 {
	return macro(cm, func(i int) float64 {
		tp, fp, _, _ := cm.classCounts(i)
		return ratio("precision", "no predicted samples", tp, tp+fp)
	})
}

// AvgRecall はマクロ平均再現率を返す。
func AvgRecall(cm *ConfusionMatrix) float64 {
	return macro(cm, func(i int) float64 {
		tp, _, fn, _ := cm.classCounts(i)
		return ratio("recall", "no true samples", tp, tp+fn)
	})
}

// AvgFMeasure はクラス毎の F1 スコアのマクロ平均を返す。
func AvgFMeasure(cm *ConfusionMatrix) float64 {
	return macro(cm, func(i int) float64 {
		tp, fp, fn, _ := cm.classCounts(i)
		return ratio("f-measure", "no true or predicted samples", 2*tp, 2*tp+fp+fn)
	})
}

// LiftMultiClass returns the average lift, precision divided by the class
// prevalence, over classes that occur in the true labels.
func LiftMultiClass(cm *ConfusionMatrix) float64 {
	total := cm.Total()
	var sum float64
	var k int
	for i := range cm.Classes {
		tp, fp, fn, _ := cm.classCounts(i)
		support := tp + fn
		if support == 0 {
			continue
		}
		precision := ratio("lift", "no predicted samples", tp, tp+fp)
		sum += precision / (support / total)
		k++
	}
	if k == 0 {
		return 0
	}
	return sum / float64(k)
}

// MCCMultiClass returns the mean one-vs-rest Matthews correlation
// coefficient.
func MCCMultiClass(cm *ConfusionMatrix) float64 {
	return macro(cm, func(i int) float64 {
		tp, fp, fn, tn := cm.classCounts(i)
		denom := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
		return ratio("mcc", "a constant row or column", tp*tn-fp*fn, denom)
	})
}

// MutualInformation returns the mutual information in bits between the
// true and the predicted labels, estimated from the confusion matrix.
func MutualInformation(cm *ConfusionMatrix) float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	n := len(cm.Classes)
	rowSums := make([]float64, n)
	colSums := make([]float64, n)
	for i := 0; i < n; i++ {
		rowSums[i] = floats.Sum(mat.Row(nil, i, cm.Counts))
		colSums[i] = floats.Sum(mat.Col(nil, i, cm.Counts))
	}

	var mi float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := cm.Counts.At(i, j)
			if c == 0 {
				continue
			}
			pij := c / total
			mi += pij * math.Log2(pij/((rowSums[i]/total)*(colSums[j]/total)))
		}
	}
	// Rounding can leave a tiny negative value for independent labels.
	return math.Max(mi, 0)
}

func macro(cm *ConfusionMatrix, perClass func(i int) float64) float64 {
	n := len(cm.Classes)
	if n == 0 {
		return 0
	}
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = perClass(i)
	}
	return floats.Sum(scores) / float64(n)
}

func ratio(metric, condition string, num, denom float64) float64 {
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, condition, 0))
	}
	return errors.SafeDivide(num, denom)
}
