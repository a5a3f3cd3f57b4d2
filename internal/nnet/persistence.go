package nnet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// NNWB v1 file format (spec §4.9): little-endian stream of
//   magic "NNWB", u32 version=1, u32 num_layers, num_layers x u32 sizes,
//   u32 num_hidden, num_hidden x u32 activation codes,
//   then per weight layer: u32 weight-count, weights (f32, row-major
//   [out][in]), u32 bias-count, biases (f32).
var nnwbMagic = [4]byte{'N', 'N', 'W', 'B'}

const nnwbVersion uint32 = 1

// ErrPersistenceFormat is returned for a bad magic, unsupported version,
// or a size that disagrees with the declared layer_sizes (spec §7).
var ErrPersistenceFormat = errors.New("nnet: persistence format error")

// Save writes the network to path in NNWB v1 format.
func (n *Network) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("nnet: create %s: %w", path, err)
	}
	defer f.Close()
	return n.WriteTo(f)
}

// WriteTo encodes the network in NNWB v1 format to w.
func (n *Network) WriteTo(w io.Writer) error {
	if !n.Initialized() {
		return ErrNotInitialized
	}
	if _, err := w.Write(nnwbMagic[:]); err != nil {
		return fmt.Errorf("nnet: write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, nnwbVersion); err != nil {
		return fmt.Errorf("nnet: write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(n.LayerSizes))); err != nil {
		return fmt.Errorf("nnet: write num_layers: %w", err)
	}
	for _, size := range n.LayerSizes {
		if err := binary.Write(w, binary.LittleEndian, uint32(size)); err != nil {
			return fmt.Errorf("nnet: write layer size: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(n.HiddenActivations))); err != nil {
		return fmt.Errorf("nnet: write num_hidden: %w", err)
	}
	for _, act := range n.HiddenActivations {
		if err := binary.Write(w, binary.LittleEndian, uint32(act)); err != nil {
			return fmt.Errorf("nnet: write activation code: %w", err)
		}
	}

	for l := 0; l < n.NumLayers(); l++ {
		fanOut := n.LayerSizes[l+1]
		fanIn := n.LayerSizes[l]
		weightCount := uint32(fanOut * fanIn)
		if err := binary.Write(w, binary.LittleEndian, weightCount); err != nil {
			return fmt.Errorf("nnet: write weight-count for layer %d: %w", l, err)
		}
		for _, row := range n.Weights[l] {
			if err := binary.Write(w, binary.LittleEndian, row); err != nil {
				return fmt.Errorf("nnet: write weights for layer %d: %w", l, err)
			}
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(fanOut)); err != nil {
			return fmt.Errorf("nnet: write bias-count for layer %d: %w", l, err)
		}
		if err := binary.Write(w, binary.LittleEndian, n.Biases[l]); err != nil {
			return fmt.Errorf("nnet: write biases for layer %d: %w", l, err)
		}
	}
	return nil
}

// Load replaces the network's contents with the NNWB v1 file at path.
// On any error the existing network is left unchanged (spec §7).
func (n *Network) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("nnet: open %s: %w", path, err)
	}
	defer f.Close()
	return n.ReadFrom(f)
}

// ReadFrom decodes an NNWB v1 stream from r and replaces the network's
// contents. Nothing is mutated unless the entire stream decodes cleanly.
func (n *Network) ReadFrom(r io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("%w: reading magic: %v", ErrPersistenceFormat, err)
	}
	if magic != nnwbMagic {
		return fmt.Errorf("%w: bad magic %q", ErrPersistenceFormat, magic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("%w: reading version: %v", ErrPersistenceFormat, err)
	}
	if version != nnwbVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrPersistenceFormat, version)
	}

	var numLayers uint32
	if err := binary.Read(r, binary.LittleEndian, &numLayers); err != nil {
		return fmt.Errorf("%w: reading num_layers: %v", ErrPersistenceFormat, err)
	}
	if numLayers < 2 {
		return fmt.Errorf("%w: num_layers must be >= 2, got %d", ErrPersistenceFormat, numLayers)
	}
	layerSizes := make([]int, numLayers)
	for i := range layerSizes {
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return fmt.Errorf("%w: reading layer size %d: %v", ErrPersistenceFormat, i, err)
		}
		layerSizes[i] = int(size)
	}

	var numHidden uint32
	if err := binary.Read(r, binary.LittleEndian, &numHidden); err != nil {
		return fmt.Errorf("%w: reading num_hidden: %v", ErrPersistenceFormat, err)
	}
	if int(numHidden) != len(layerSizes)-2 {
		return fmt.Errorf("%w: num_hidden %d disagrees with %d layer sizes", ErrPersistenceFormat, numHidden, len(layerSizes))
	}
	hiddenActivations := make([]Activation, numHidden)
	for i := range hiddenActivations {
		var code uint32
		if err := binary.Read(r, binary.LittleEndian, &code); err != nil {
			return fmt.Errorf("%w: reading activation code %d: %v", ErrPersistenceFormat, i, err)
		}
		if code > uint32(Tanh) {
			return fmt.Errorf("%w: unknown activation code %d", ErrPersistenceFormat, code)
		}
		hiddenActivations[i] = Activation(code)
	}

	numWeightLayers := len(layerSizes) - 1
	weights := make([][][]float32, numWeightLayers)
	biases := make([][]float32, numWeightLayers)
	for l := 0; l < numWeightLayers; l++ {
		fanIn := layerSizes[l]
		fanOut := layerSizes[l+1]

		var weightCount uint32
		if err := binary.Read(r, binary.LittleEndian, &weightCount); err != nil {
			return fmt.Errorf("%w: reading weight-count for layer %d: %v", ErrPersistenceFormat, l, err)
		}
		if int(weightCount) != fanIn*fanOut {
			return fmt.Errorf("%w: layer %d weight-count %d disagrees with %dx%d", ErrPersistenceFormat, l, weightCount, fanOut, fanIn)
		}
		weights[l] = make([][]float32, fanOut)
		for o := 0; o < fanOut; o++ {
			row := make([]float32, fanIn)
			if err := binary.Read(r, binary.LittleEndian, row); err != nil {
				return fmt.Errorf("%w: reading weights for layer %d row %d: %v", ErrPersistenceFormat, l, o, err)
			}
			weights[l][o] = row
		}

		var biasCount uint32
		if err := binary.Read(r, binary.LittleEndian, &biasCount); err != nil {
			return fmt.Errorf("%w: reading bias-count for layer %d: %v", ErrPersistenceFormat, l, err)
		}
		if int(biasCount) != fanOut {
			return fmt.Errorf("%w: layer %d bias-count %d disagrees with %d", ErrPersistenceFormat, l, biasCount, fanOut)
		}
		b := make([]float32, fanOut)
		if err := binary.Read(r, binary.LittleEndian, b); err != nil {
			return fmt.Errorf("%w: reading biases for layer %d: %v", ErrPersistenceFormat, l, err)
		}
		biases[l] = b
	}

	n.LayerSizes = layerSizes
	n.Weights = weights
	n.Biases = biases
	n.HiddenActivations = hiddenActivations
	n.allocScratch()
	return nil
}
