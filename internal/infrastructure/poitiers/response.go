package poitiers

// apiResponse - ответ data-fair API Grand Poitiers (/lines)
type apiResponse struct {
	Total   *int          `json:"total"`
	Results []parkingData `json:"results"`
}

// parkingData - одна запись из results. Все поля могут отсутствовать.
type parkingData struct {
	ID                   *int     `json:"Id"`
	Nom                  *string  `json:"Nom"`
	Capacite             *int     `json:"Capacite"`
	Places               *int     `json:"Places"`
	TauxOccupation       *float64 `json:"taux_doccupation"`
	Geopoint             *string  `json:"_geopoint"`
	InfoParkingsGeoPoint *string  `json:"infos_parkingsgeo_point"`
	DerniereMiseAJour    *string  `json:"Dernière_mise_à_jour_Base"`
}

func (d parkingData) name() string {
	if d.Nom == nil {
		return ""
	}
	return *d.Nom
}
