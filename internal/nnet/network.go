// Package nnet implements a small, arbitrary-shape feed-forward neural
// network used as the optional evaluator backend (spec §4.9). Unlike a
// fixed-architecture, quantized NNUE net, every layer size and
// activation function is configurable at runtime and weights are
// ordinary float32 values, persisted in a dedicated binary format
// ("NNWB v1").
package nnet

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Activation identifies a per-layer nonlinearity.
type Activation uint8

const (
	Linear Activation = iota
	ReLU
	Sigmoid
	Tanh
)

func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	default:
		return "unknown"
	}
}

func (a Activation) apply(z float32) float32 {
	switch a {
	case ReLU:
		if z < 0 {
			return 0
		}
		return z
	case Sigmoid:
		return sigmoid(z)
	case Tanh:
		return float32(math.Tanh(float64(z)))
	default:
		return z
	}
}

// derivative returns d(activation)/dz given z and the already-computed
// activation output `out`: ReLU tests z, while Sigmoid and Tanh use the
// cheap form in terms of out (spec §4.9: "Sigmoid→a(1−a), Tanh→1−a²").
func (a Activation) derivative(z, out float32) float32 {
	switch a {
	case ReLU:
		if z > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		return out * (1 - out)
	case Tanh:
		return 1 - out*out
	default:
		return 1
	}
}

func sigmoid(z float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(z))))
}

// ErrNotInitialized is returned by Forward/Train when the network has no
// layers configured yet (spec §7, NetNotInitialized).
var ErrNotInitialized = errors.New("nnet: network not initialized")

// ErrFeatureSizeMismatch is returned when an input vector's length does
// not match the configured input layer size (spec §7).
var ErrFeatureSizeMismatch = errors.New("nnet: feature size mismatch")

// Network is a fully-connected feed-forward network with an arbitrary
// number of layers. LayerSizes has L+1 entries (input size, then one
// per layer); there are L weight layers. The output layer's activation
// is always Sigmoid regardless of HiddenActivations (spec §4.9).
type Network struct {
	LayerSizes        []int
	Weights           [][][]float32 // [layer][outIdx][inIdx]
	Biases            [][]float32   // [layer][outIdx]
	HiddenActivations []Activation  // len == L-1, one per hidden layer

	// Forward-pass scratch, retained so Train can run backprop without
	// redoing the forward pass (spec §3: Network carries activations
	// and z_values fields for this purpose).
	zValues     [][]float32
	activations [][]float32

	// Training accumulators (spec §3: optional training buffers).
	weightGrads [][][]float32
	biasGrads   [][]float32
	deltas      [][]float32
}

// New returns an uninitialized network (spec §3: "created uninitialized").
func New() *Network {
	return &Network{}
}

// NumLayers returns the number of weight layers (L).
func (n *Network) NumLayers() int {
	if len(n.LayerSizes) == 0 {
		return 0
	}
	return len(n.LayerSizes) - 1
}

// Initialized reports whether Initialize/Load has populated the network.
func (n *Network) Initialized() bool {
	return n.NumLayers() > 0
}

// Initialize resizes the network to layerSizes and fills weights with
// Xavier-scaled random values (factor sqrt(2/(fan_in+fan_out))) and
// zero biases; hidden layers get defaultActivation, the output layer is
// always Sigmoid (spec §4.9). seed makes initialization reproducible,
// matching the teacher's InitRandom(seed) testing convention.
func (n *Network) Initialize(layerSizes []int, defaultActivation Activation, seed int64) error {
	if len(layerSizes) < 2 {
		return fmt.Errorf("nnet: layer_sizes needs at least 2 entries, got %d", len(layerSizes))
	}
	for _, size := range layerSizes {
		if size <= 0 {
			return fmt.Errorf("nnet: layer sizes must be positive, got %d", size)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	numLayers := len(layerSizes) - 1

	n.LayerSizes = append([]int(nil), layerSizes...)
	n.Weights = make([][][]float32, numLayers)
	n.Biases = make([][]float32, numLayers)
	n.HiddenActivations = make([]Activation, numLayers-1)
	for i := range n.HiddenActivations {
		n.HiddenActivations[i] = defaultActivation
	}

	for l := 0; l < numLayers; l++ {
		fanIn := layerSizes[l]
		fanOut := layerSizes[l+1]
		scale := math.Sqrt(2.0 / float64(fanIn+fanOut))

		n.Weights[l] = make([][]float32, fanOut)
		for o := 0; o < fanOut; o++ {
			n.Weights[l][o] = make([]float32, fanIn)
			for i := 0; i < fanIn; i++ {
				n.Weights[l][o][i] = float32((rng.Float64()*2 - 1) * scale)
			}
		}
		n.Biases[l] = make([]float32, fanOut)
	}

	n.allocScratch()
	return nil
}

func (n *Network) allocScratch() {
	numLayers := n.NumLayers()
	n.zValues = make([][]float32, numLayers)
	n.activations = make([][]float32, numLayers)
	n.weightGrads = make([][][]float32, numLayers)
	n.biasGrads = make([][]float32, numLayers)
	n.deltas = make([][]float32, numLayers)
	for l := 0; l < numLayers; l++ {
		size := n.LayerSizes[l+1]
		n.zValues[l] = make([]float32, size)
		n.activations[l] = make([]float32, size)
		n.biasGrads[l] = make([]float32, size)
		n.deltas[l] = make([]float32, size)
		n.weightGrads[l] = make([][]float32, size)
		for o := range n.weightGrads[l] {
			n.weightGrads[l][o] = make([]float32, n.LayerSizes[l])
		}
	}
}

// SetLayer replaces the weights and biases of layer i (0-indexed weight
// layer) with w ([out][in]) and b ([out]), per spec §3 "set_layer".
func (n *Network) SetLayer(i int, w [][]float32, b []float32) error {
	if i < 0 || i >= n.NumLayers() {
		return fmt.Errorf("nnet: layer index %d out of range [0,%d)", i, n.NumLayers())
	}
	fanOut := n.LayerSizes[i+1]
	fanIn := n.LayerSizes[i]
	if len(w) != fanOut || len(b) != fanOut {
		return fmt.Errorf("nnet: layer %d expects %d output rows, got weights=%d biases=%d", i, fanOut, len(w), len(b))
	}
	for _, row := range w {
		if len(row) != fanIn {
			return fmt.Errorf("nnet: layer %d expects rows of length %d, got %d", i, fanIn, len(row))
		}
	}
	n.Weights[i] = w
	n.Biases[i] = b
	return nil
}

// SetActivation sets the activation for one hidden layer (0-indexed) or,
// if layer is -1, every hidden layer at once. The output layer's
// activation cannot be changed: it is always Sigmoid.
func (n *Network) SetActivation(layer int, act Activation) error {
	if layer == -1 {
		for i := range n.HiddenActivations {
			n.HiddenActivations[i] = act
		}
		return nil
	}
	if layer < 0 || layer >= len(n.HiddenActivations) {
		return fmt.Errorf("nnet: hidden layer index %d out of range [0,%d)", layer, len(n.HiddenActivations))
	}
	n.HiddenActivations[layer] = act
	return nil
}

// Forward runs the network on input and returns the output layer's
// single value. A size-mismatched input never panics: it returns a
// neutral 0.5 (spec §4.9, §7) so an evaluator built on a misconfigured
// net stays deterministic.
func (n *Network) Forward(input []float32) (float32, error) {
	if !n.Initialized() {
		return 0.5, ErrNotInitialized
	}
	if len(input) != n.LayerSizes[0] {
		return 0.5, fmt.Errorf("%w: want %d, got %d", ErrFeatureSizeMismatch, n.LayerSizes[0], len(input))
	}

	prev := input
	numLayers := n.NumLayers()
	for l := 0; l < numLayers; l++ {
		out := n.LayerSizes[l+1]
		for o := 0; o < out; o++ {
			sum := n.Biases[l][o]
			row := n.Weights[l][o]
			for i, v := range prev {
				sum += row[i] * v
			}
			n.zValues[l][o] = sum
			if l == numLayers-1 {
				n.activations[l][o] = sigmoid(sum)
			} else {
				n.activations[l][o] = n.HiddenActivations[l].apply(sum)
			}
		}
		prev = n.activations[l]
	}

	return prev[0], nil
}
