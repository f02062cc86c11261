package sapling

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
ConfusionMatrix counts predictions of a tree: the element at row i and
column j is the number of samples of the i-th class that were predicted
to be of the j-th class. Counts are only ever accumulated.
*/
type ConfusionMatrix struct {
	classes Classes
	m       *mat.Dense
}

/*
NewConfusionMatrix takes the classes of a dataset and returns an empty
ConfusionMatrix for them. It panics if classes is empty.
*/
func NewConfusionMatrix(classes Classes) *ConfusionMatrix {
	n := len(classes)
	return &ConfusionMatrix{append(Classes(nil), classes...), mat.NewDense(n, n, nil)}
}

// Classes returns the classes indexing the rows and columns of the matrix.
func (cm *ConfusionMatrix) Classes() Classes {
	return cm.classes
}

/*
Record takes the true label of a sample and the label predicted for it and
counts the prediction. It returns an error wrapping ErrUnknownClass if any
of the labels is not one of the matrix classes.
*/
func (cm *ConfusionMatrix) Record(trueLabel, predictedLabel int) error {
	i, ok := cm.classes.Index(trueLabel)
	if !ok {
		return fmt.Errorf("true label %d: %w", trueLabel, ErrUnknownClass)
	}
	j, ok := cm.classes.Index(predictedLabel)
	if !ok {
		return fmt.Errorf("predicted label %d: %w", predictedLabel, ErrUnknownClass)
	}
	cm.m.Set(i, j, cm.m.At(i, j)+1)
	return nil
}

// At returns the count of samples of the i-th class predicted as the j-th class.
func (cm *ConfusionMatrix) At(i, j int) int {
	return int(cm.m.At(i, j))
}

// Total returns the number of predictions counted in the matrix.
func (cm *ConfusionMatrix) Total() int {
	return int(mat.Sum(cm.m))
}

// Trace returns the number of correct predictions counted in the matrix.
func (cm *ConfusionMatrix) Trace() int {
	return int(mat.Trace(cm.m))
}

// RowSum returns the number of samples of the i-th class.
func (cm *ConfusionMatrix) RowSum(i int) int {
	return int(mat.Sum(cm.m.RowView(i)))
}

// ColSum returns the number of samples predicted as the j-th class.
func (cm *ConfusionMatrix) ColSum(j int) int {
	return int(mat.Sum(cm.m.ColView(j)))
}

// Dense returns a copy of the counts as a gonum dense matrix.
func (cm *ConfusionMatrix) Dense() *mat.Dense {
	return mat.DenseCopyOf(cm.m)
}

/*
Add takes another ConfusionMatrix and returns a new one with the
element-wise sum of both. It returns an error if the matrices are not
indexed by the same classes.
*/
func (cm *ConfusionMatrix) Add(other *ConfusionMatrix) (*ConfusionMatrix, error) {
	if !sameClasses(cm.classes, other.classes) {
		return nil, fmt.Errorf("cannot add confusion matrices for classes %v and %v", cm.classes, other.classes)
	}
	result := NewConfusionMatrix(cm.classes)
	result.m.Add(cm.m, other.m)
	return result, nil
}

/*
SumConfusionMatrices takes the classes of a dataset and a number of confusion
matrices for them and returns their element-wise sum.
*/
func SumConfusionMatrices(classes Classes, matrices ...*ConfusionMatrix) (*ConfusionMatrix, error) {
	result := NewConfusionMatrix(classes)
	var err error
	for _, m := range matrices {
		result, err = result.Add(m)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (cm *ConfusionMatrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(cm.m, mat.Squeeze()))
}

/*
Evaluate takes a tree node, a set and the classes of the dataset and returns
the ConfusionMatrix of the labels the node predicts for the samples in the
set against their true labels. It returns an error wrapping ErrUnknownClass
if a sample label or a predicted label is not one of the classes, and one
wrapping ErrMissingFeature if a sample lacks features the node splits on.
*/
func Evaluate(n Node, s Set, classes Classes) (*ConfusionMatrix, error) {
	if err := checkFeatures(n, s); err != nil {
		return nil, fmt.Errorf("evaluating: %w", err)
	}
	cm := NewConfusionMatrix(classes)
	for _, sample := range s.Samples() {
		err := cm.Record(sample.Label(), n.Predict(sample))
		if err != nil {
			return nil, fmt.Errorf("evaluating sample %v: %w", sample, err)
		}
	}
	return cm, nil
}

// Evaluate returns the ConfusionMatrix of the tree's predictions for the samples of a set.
func (t *Tree) Evaluate(s Set, classes Classes) (*ConfusionMatrix, error) {
	return Evaluate(t.Root, s, classes)
}

func sameClasses(a, b Classes) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
