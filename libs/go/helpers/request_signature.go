package helpers

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Headers carrying a signed API request.
const (
	SignerAddressHeader   = "X-Guardian-Address"
	SignerTimestampHeader = "X-Guardian-Timestamp"
	SignerSignatureHeader = "X-Guardian-Signature"
)

var ErrInvalidRequestSignature = errors.New("invalid request signature")

// RequestDigest is keccak256("METHOD|PATH|TIMESTAMP|keccak256(body)") with the body hash in 0x hex.
func RequestDigest(method, path string, timestamp int64, body []byte) common.Hash {
	payload := method + "|" + path + "|" + strconv.FormatInt(timestamp, 10) + "|" + crypto.Keccak256Hash(body).Hex()
	return crypto.Keccak256Hash([]byte(payload))
}

// SignRequest returns the 0x encoded 65 byte signature over RequestDigest, with v in {27, 28}.
func SignRequest(key *ecdsa.PrivateKey, method, path string, timestamp int64, body []byte) (string, error) {
	digest := RequestDigest(method, path, timestamp, body)
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// RecoverRequestSigner returns the address that produced signature over the request.
// v may be 0/1 or 27/28.
func RecoverRequestSigner(signature, method, path string, timestamp int64, body []byte) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidRequestSignature
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	digest := RequestDigest(method, path, timestamp, body)
	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidRequestSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
