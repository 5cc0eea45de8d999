package bigz

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/internal/bn"
)

var (
	_ msgpack.CustomEncoder = (*Int)(nil)
	_ msgpack.CustomDecoder = (*Int)(nil)
)

var errCorrupt = errors.New("bigz: corrupt msgpack value")

// EncodeMsgpack writes x as a two-element sequence: the sign as an int8 and
// the magnitude as an array of uint64 words, least significant first.
func (x *Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeInt8(int8(x.sign)); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(x.mag)); err != nil {
		return err
	}
	for _, w := range x.mag {
		if err := enc.EncodeUint64(uint64(w)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack reads the form written by EncodeMsgpack and rejects values
// that break the sign-magnitude invariant.
func (x *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	sign, err := dec.DecodeInt8()
	if err != nil {
		return err
	}
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	if err := defaultArith.reserve("DecodeMsgpack", n); err != nil {
		return err
	}
	mag := make(bn.Vector, n)
	for i := range mag {
		w, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		mag[i] = bn.Word(w)
	}
	if sign < -1 || sign > 1 || (sign == 0) != mag.IsZero() || len(mag.Norm()) != n {
		return errCorrupt
	}
	*x = Int{sign: Sign(sign), mag: mag}
	return nil
}
