package models

// ProductInfo est la projection minimale renvoyée par le service produits
// (utilisée pour enrichir les lignes de commande et les factures)
type ProductInfo struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}
