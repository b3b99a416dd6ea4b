package openfactura

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/openfactura/go-openfactura-client/openfactura/model"
)

const verificationBaseURL = "https://www4.sii.cl/consdcvinternetui/#/buscar"

var rutPattern = regexp.MustCompile(`^\d{1,8}-[\dK]$`)

// VerificationLink builds the public SII lookup URL for an emitted document,
// so callers can hand receivers a link to verify the DTE against the issuer
// RUT, type, folio and total amount.
func VerificationLink(issuerRUT string, dteType model.DTEType, folio int, totalAmount int64) (string, error) {
	rut, err := normalizeRUT(issuerRUT)
	if err != nil {
		return "", err
	}
	if !dteType.Valid() {
		return "", fmt.Errorf("invalid document type %d", int(dteType))
	}
	if folio <= 0 {
		return "", fmt.Errorf("folio %d is not an emitted folio", folio)
	}

	return fmt.Sprintf("%s?rut=%s&tipo=%d&folio=%d&monto=%d",
		verificationBaseURL, rut, int(dteType), folio, totalAmount), nil
}

// normalizeRUT strips thousands dots, uppercases a trailing K and checks the
// number-dash-verifier shape.
func normalizeRUT(rut string) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rut), ".", ""))
	if !rutPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid RUT %q", rut)
	}
	return normalized, nil
}
