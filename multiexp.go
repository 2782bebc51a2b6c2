package bn254

import (
	"errors"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/bn254/fr"
)

// ErrInvalidLengths mismatched multi exponentiation input slices
var ErrInvalidLengths = errors.New("len(points) != len(scalars)")

// MultiExpConfig enables to set optional configuration attribute to a call to MultiExp
type MultiExpConfig struct {
	NbTasks int // go routines to be used in the multiexp. can be larger than num cpus.
}

// MultiExp implements section 4 of https://eprint.iacr.org/2012/549.pdf
//
// computes p = ∑ᵢ [scalars[i]] points[i] with the bucket method, splitting
// the scalar windows across goroutines. Infinity points and zero scalars are
// filtered out up front.
func (p *G1Jac) MultiExp(points []G1Affine, scalars []fr.Element, config MultiExpConfig) (*G1Jac, error) {
	if len(points) != len(scalars) {
		return nil, ErrInvalidLengths
	}
	nbTasks := config.NbTasks
	if nbTasks <= 0 {
		nbTasks = runtime.NumCPU()
	}

	if len(points) == 0 {
		p.Set(&g1Infinity)
		return p, nil
	}

	// trivial inputs contribute nothing; skip them in every chunk
	toSkip := bitset.New(uint(len(points)))
	digits := make([][fr.Limbs]uint64, len(points))
	for i := range points {
		if points[i].IsInfinity() || scalars[i].IsZero() {
			toSkip.Set(uint(i))
			continue
		}
		digits[i] = scalars[i].Bits()
	}

	c := bestC(len(points))
	nbChunks := (fr.Bits + c - 1) / c

	// one partial sum per window, computed concurrently
	chunkSums := make([]G1Jac, nbChunks)
	g := new(errgroup.Group)
	g.SetLimit(nbTasks)
	for j := 0; j < nbChunks; j++ {
		g.Go(func() error {
			buckets := make([]G1Jac, (1<<c)-1)
			for i := range buckets {
				buckets[i].Set(&g1Infinity)
			}
			for i := range points {
				if toSkip.Test(uint(i)) {
					continue
				}
				if d := digit(&digits[i], j, c); d != 0 {
					buckets[d-1].AddMixed(&points[i])
				}
			}

			// weighted bucket reduction: ∑ₖ k·bucket[k] as a running double sum
			var sum, total G1Jac
			sum.Set(&g1Infinity)
			total.Set(&g1Infinity)
			for k := len(buckets) - 1; k >= 0; k-- {
				sum.AddAssign(&buckets[k])
				total.AddAssign(&sum)
			}
			chunkSums[j] = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Horner over the windows, most significant first
	var res G1Jac
	res.Set(&chunkSums[nbChunks-1])
	for j := nbChunks - 2; j >= 0; j-- {
		for k := 0; k < c; k++ {
			res.DoubleAssign()
		}
		res.AddAssign(&chunkSums[j])
	}
	p.Set(&res)
	return p, nil
}

// MultiExp implements section 4 of https://eprint.iacr.org/2012/549.pdf
func (p *G1Affine) MultiExp(points []G1Affine, scalars []fr.Element, config MultiExpConfig) (*G1Affine, error) {
	var pj G1Jac
	if _, err := pj.MultiExp(points, scalars, config); err != nil {
		return nil, err
	}
	return p.FromJacobian(&pj), nil
}

// MultiExp implements section 4 of https://eprint.iacr.org/2012/549.pdf
//
// same bucket method as G1Jac.MultiExp, on the twist
func (p *G2Jac) MultiExp(points []G2Affine, scalars []fr.Element, config MultiExpConfig) (*G2Jac, error) {
	if len(points) != len(scalars) {
		return nil, ErrInvalidLengths
	}
	nbTasks := config.NbTasks
	if nbTasks <= 0 {
		nbTasks = runtime.NumCPU()
	}

	if len(points) == 0 {
		p.Set(&g2Infinity)
		return p, nil
	}

	toSkip := bitset.New(uint(len(points)))
	digits := make([][fr.Limbs]uint64, len(points))
	for i := range points {
		if points[i].IsInfinity() || scalars[i].IsZero() {
			toSkip.Set(uint(i))
			continue
		}
		digits[i] = scalars[i].Bits()
	}

	c := bestC(len(points))
	nbChunks := (fr.Bits + c - 1) / c

	chunkSums := make([]G2Jac, nbChunks)
	g := new(errgroup.Group)
	g.SetLimit(nbTasks)
	for j := 0; j < nbChunks; j++ {
		g.Go(func() error {
			buckets := make([]G2Jac, (1<<c)-1)
			for i := range buckets {
				buckets[i].Set(&g2Infinity)
			}
			for i := range points {
				if toSkip.Test(uint(i)) {
					continue
				}
				if d := digit(&digits[i], j, c); d != 0 {
					buckets[d-1].AddMixed(&points[i])
				}
			}

			var sum, total G2Jac
			sum.Set(&g2Infinity)
			total.Set(&g2Infinity)
			for k := len(buckets) - 1; k >= 0; k-- {
				sum.AddAssign(&buckets[k])
				total.AddAssign(&sum)
			}
			chunkSums[j] = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var res G2Jac
	res.Set(&chunkSums[nbChunks-1])
	for j := nbChunks - 2; j >= 0; j-- {
		for k := 0; k < c; k++ {
			res.DoubleAssign()
		}
		res.AddAssign(&chunkSums[j])
	}
	p.Set(&res)
	return p, nil
}

// MultiExp implements section 4 of https://eprint.iacr.org/2012/549.pdf
func (p *G2Affine) MultiExp(points []G2Affine, scalars []fr.Element, config MultiExpConfig) (*G2Affine, error) {
	var pj G2Jac
	if _, err := pj.MultiExp(points, scalars, config); err != nil {
		return nil, err
	}
	return p.FromJacobian(&pj), nil
}

// bestC returns the window width in bits for the given input size, clamped
// to [4, 16]
func bestC(nbPoints int) int {
	c := 4
	for c < 16 && (1 << (c + 1)) <= nbPoints {
		c++
	}
	return c
}

// digit extracts the j-th c-bit window of a regular-form scalar
func digit(scalar *[fr.Limbs]uint64, j, c int) uint64 {
	bitPos := j * c
	limb := bitPos / 64
	shift := uint(bitPos % 64)
	d := scalar[limb] >> shift
	if int(shift)+c > 64 && limb+1 < fr.Limbs {
		d |= scalar[limb+1] << (64 - shift)
	}
	return d & ((1 << c) - 1)
}
