package service

import (
	"math/rand"
	"regexp"
	"strings"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardCodeRe   = regexp.MustCompile(`^\d{3,4}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)
)

// validateCard vérifie le format "numéro cvc MM/AA" : un numéro à 16 chiffres
// (les espaces internes sont tolérés), un code à 3-4 chiffres et une expiration
// MM/AA ou MM/AAAA. Renvoie le numéro normalisé (sans espaces).
func validateCard(cardInformation string) (string, bool) {
	fields := strings.Fields(cardInformation)
	if len(fields) < 3 {
		return "", false
	}

	expiry := fields[len(fields)-1]
	code := fields[len(fields)-2]
	number := strings.Join(fields[:len(fields)-2], "")

	if !cardNumberRe.MatchString(number) {
		return "", false
	}
	if !cardCodeRe.MatchString(code) {
		return "", false
	}
	if !cardExpiryRe.MatchString(expiry) {
		return "", false
	}
	return number, true
}

// maskCard masque un numéro de carte en ne gardant que les 4 derniers chiffres
func maskCard(number string) string {
	return "**** **** **** " + number[len(number)-4:]
}

// cardNetwork attribue un réseau de carte au hasard entre deux valeurs fixes.
// Placeholder assumé : pas de détection BIN réelle ici.
func cardNetwork() string {
	if rand.Intn(2) == 0 {
		return "VISA"
	}
	return "MasterCard"
}
