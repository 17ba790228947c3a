// Package migration parses the otpauth-migration URLs embedded in Google
// Authenticator export QR codes and the protobuf payload they carry.
package migration

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed reports a payload that is not a valid MigrationPayload
// message.
var ErrMalformed = errors.New("malformed migration payload")

// Algorithm is the HMAC hash algorithm of an exported account.
type Algorithm int32

const (
	AlgorithmUnspecified Algorithm = iota
	AlgorithmSHA1
	AlgorithmSHA256
	AlgorithmSHA512
	AlgorithmMD5
)

// DigitCount is the OTP code length of an exported account.
type DigitCount int32

const (
	DigitCountUnspecified DigitCount = iota
	DigitCountSix
	DigitCountEight
)

// Type distinguishes counter-based from time-based accounts.
type Type int32

const (
	TypeUnspecified Type = iota
	TypeHOTP
	TypeTOTP
)

// Parameters is one exported OTP account.
type Parameters struct {
	Secret    []byte
	Name      string
	Issuer    string
	Algorithm Algorithm
	Digits    DigitCount
	Type      Type
	Counter   uint64
}

// Payload is the top-level export message: the account list plus batch
// metadata. The metadata only matters when an export spans several QR
// codes; the decode pipeline ignores it.
type Payload struct {
	Parameters []Parameters
	Version    int32
	BatchSize  int32
	BatchIndex int32
	BatchID    int32
}

// DecodePayload parses the protobuf wire encoding of a MigrationPayload.
func DecodePayload(data []byte) (*Payload, error) {
	p := &Payload{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]

			params, err := decodeParameters(raw)
			if err != nil {
				return nil, err
			}
			p.Parameters = append(p.Parameters, params)
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			p.Version = int32(v)
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			p.BatchSize = int32(v)
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			p.BatchIndex = int32(v)
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			p.BatchID = int32(v)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return p, nil
}

func decodeParameters(data []byte) (Parameters, error) {
	var params Parameters
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return params, malformed(protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num >= 1 && num <= 3 && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return params, malformed(protowire.ParseError(n))
			}
			data = data[n:]

			switch num {
			case 1:
				params.Secret = append([]byte(nil), raw...)
			case 2:
				params.Name = string(raw)
			case 3:
				params.Issuer = string(raw)
			}
		case num >= 4 && num <= 7 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return params, malformed(protowire.ParseError(n))
			}
			data = data[n:]

			switch num {
			case 4:
				params.Algorithm = Algorithm(v)
			case 5:
				params.Digits = DigitCount(v)
			case 6:
				params.Type = Type(v)
			case 7:
				params.Counter = v
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return params, malformed(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return params, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
