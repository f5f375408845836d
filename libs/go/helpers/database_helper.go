package helpers

import (
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// BigToNumeric converts a non-negative big integer into a NUMERIC(78,0) value.
// A nil input is stored as zero.
func BigToNumeric(v *big.Int) pgtype.Numeric {
	if v == nil {
		return pgtype.Numeric{Int: new(big.Int), Valid: true}
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Exp: 0, Valid: true}
}

// NumericToBig converts an integral pgtype.Numeric back to a big integer.
func NumericToBig(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid {
		return nil, fmt.Errorf("numeric value is null")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("numeric value is not a finite integer")
	}
	out := new(big.Int)
	if n.Int != nil {
		out.Set(n.Int)
	}
	switch {
	case n.Exp > 0:
		out.Mul(out, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	case n.Exp < 0:
		div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-n.Exp)), nil)
		q, r := new(big.Int).QuoRem(out, div, new(big.Int))
		if r.Sign() != 0 {
			return nil, fmt.Errorf("numeric value %s has a fractional part", n.Int.String())
		}
		out = q
	}
	return out, nil
}

// TimestamptzToTime returns the zero time for NULL timestamps.
func TimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
