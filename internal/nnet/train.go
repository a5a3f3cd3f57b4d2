package nnet

import "fmt"

// TrainOne performs one SGD step on a single example and returns the
// mean-squared-error loss before the update (spec §4.9, §6 "train_one").
func (n *Network) TrainOne(input []float32, target float32, lr float32) (float32, error) {
	out, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	n.zeroGradients()
	n.accumulateGradients(input, target)
	n.applyGradients(lr)
	diff := out - target
	return 0.5 * diff * diff, nil
}

// TrainBatch accumulates gradients over every example, applies one
// averaged SGD step, and returns the mean loss across the batch (spec
// §6 "train_batch").
func (n *Network) TrainBatch(inputs [][]float32, targets []float32, lr float32) (float32, error) {
	if len(inputs) != len(targets) {
		return 0, fmt.Errorf("nnet: train_batch needs matching inputs/targets, got %d/%d", len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return 0, fmt.Errorf("nnet: train_batch needs at least one example")
	}

	n.zeroGradients()
	var totalLoss float32
	for i, input := range inputs {
		out, err := n.Forward(input)
		if err != nil {
			return 0, err
		}
		n.accumulateGradients(input, targets[i])
		diff := out - targets[i]
		totalLoss += 0.5 * diff * diff
	}
	batchSize := float32(len(inputs))
	n.applyGradients(lr / batchSize)
	return totalLoss / batchSize, nil
}

// accumulateGradients runs backprop from the last Forward call's cached
// z_values/activations and adds the result into weightGrads/biasGrads.
// Output delta: δ = (a−target)·a·(1−a) (output is always Sigmoid).
// Hidden delta: δ[ℓ] = (Wᵀ·δ[ℓ+1]) ⊙ act_ℓ'(·) (spec §4.9).
func (n *Network) accumulateGradients(input []float32, target float32) {
	numLayers := n.NumLayers()
	outIdx := numLayers - 1

	for o, a := range n.activations[outIdx] {
		n.deltas[outIdx][o] = (a - target) * a * (1 - a)
	}

	for l := numLayers - 2; l >= 0; l-- {
		nextDeltas := n.deltas[l+1]
		nextWeights := n.Weights[l+1]
		act := n.HiddenActivations[l]
		for o := range n.deltas[l] {
			var sum float32
			for k, row := range nextWeights {
				sum += row[o] * nextDeltas[k]
			}
			n.deltas[l][o] = sum * act.derivative(n.zValues[l][o], n.activations[l][o])
		}
	}

	for l := 0; l < numLayers; l++ {
		prevAct := input
		if l > 0 {
			prevAct = n.activations[l-1]
		}
		for o, d := range n.deltas[l] {
			n.biasGrads[l][o] += d
			row := n.weightGrads[l][o]
			for i, pv := range prevAct {
				row[i] += d * pv
			}
		}
	}
}

func (n *Network) applyGradients(lr float32) {
	for l := range n.Weights {
		for o := range n.Weights[l] {
			row := n.Weights[l][o]
			gradRow := n.weightGrads[l][o]
			for i := range row {
				row[i] -= lr * gradRow[i]
			}
			n.Biases[l][o] -= lr * n.biasGrads[l][o]
		}
	}
}

func (n *Network) zeroGradients() {
	for l := range n.weightGrads {
		for o := range n.weightGrads[l] {
			row := n.weightGrads[l][o]
			for i := range row {
				row[i] = 0
			}
		}
		for o := range n.biasGrads[l] {
			n.biasGrads[l][o] = 0
		}
	}
}
