package neuralnet

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// classSet returns the distinct labels in ascending order. Output row i of
// a multi-class network stands for classes[i].
func classSet(labels []int) []int {
	seen := make(map[int]struct{}, len(labels))
	classes := make([]int, 0)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		classes = append(classes, l)
	}
	sort.Ints(classes)
	return classes
}

func classIndex(classes []int) map[int]int {
	idx := make(map[int]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return idx
}

// outputWidth is the number of output neurons for a class count. Binary
// problems share a single sigmoid unit.
func outputWidth(numClasses int) int {
	if numClasses <= 2 {
		return 1
	}
	return numClasses
}

// encodeTargets builds the target matrix, one column per training point.
// Two or fewer classes give a single row of 0/1 values: raw labels when
// they already are 0/1, otherwise the label's index in classes. More
// classes give a one-hot matrix.
func encodeTargets(labels []int, classes []int) *mat.Dense {
	rows := outputWidth(len(classes))
	norm := make([]float64, rows*len(labels))
	idx := classIndex(classes)

	if rows == 1 {
		raw := true
		for _, c := range classes {
			if c != 0 && c != 1 {
				raw = false
			}
		}
		for j, label := range labels {
			if raw {
				norm[j] = float64(label)
			} else {
				norm[j] = float64(idx[label])
			}
		}
	} else {
		for j, label := range labels {
			norm[idx[label]*len(labels)+j] = 1.0
		}
	}

	return mat.NewDense(rows, len(labels), norm)
}

// decodeOutputs maps output columns back to class labels.
func decodeOutputs(out *mat.Dense, classes []int) ([]int, error) {
	rows, cols := out.Dims()
	labels := make([]int, cols)
	if rows == 1 {
		for j := 0; j < cols; j++ {
			k := 0
			if out.At(0, j) >= 0.5 && len(classes) > 1 {
				k = 1
			}
			labels[j] = classes[k]
		}
		return labels, nil
	}

	backing := make([]float64, rows*cols)
	copy(backing, mat.DenseCopyOf(out).RawMatrix().Data)
	t := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
	am, err := tensor.Argmax(t, 0)
	if err != nil {
		return nil, err
	}
	// a single column reduces to a scalar
	switch idx := am.Data().(type) {
	case []int:
		for j, k := range idx {
			labels[j] = classes[k]
		}
	case int:
		labels[0] = classes[idx]
	}
	return labels, nil
}
