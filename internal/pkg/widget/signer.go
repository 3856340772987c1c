package widget

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// SignSmartContractData signs the widget payload with the partner's
// secp256k1 private key and returns a copy carrying the signature. The
// digest is the SHA-256 of the payload fields concatenated in the order the
// provider verifies them.
func SignSmartContractData(data SignedData, privateKeyHex string) (SignedData, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return SignedData{}, fmt.Errorf("parse partner private key: %w", err)
	}

	digest := signingDigest(data)
	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return SignedData{}, fmt.Errorf("sign widget payload: %w", err)
	}

	data.Signature = hex.EncodeToString(sig)
	return data, nil
}

func signingDigest(data SignedData) []byte {
	h := sha256.New()
	h.Write([]byte(data.Address))
	h.Write([]byte(data.Commodity))
	h.Write([]byte(strconv.FormatFloat(data.CommodityAmount, 'f', -1, 64)))
	h.Write([]byte(data.Network))
	h.Write([]byte(data.SCAddress))
	h.Write([]byte(data.SCInputData))
	return h.Sum(nil)
}
