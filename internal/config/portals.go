package config

import (
	"fmt"
	"sort"
)

// DefaultAccount is the portal account used when none is requested
const DefaultAccount = "FTP_WA_GUESS"

// KnownAccounts lists the portal account names recognized in the
// encrypted configuration, in canonical order.
var KnownAccounts = []string{
	"NASA",
	"GLEAM",
	"FTP_WA",
	"FTP_WA_GUESS",
	"MSWEP",
	"Copernicus",
	"VITO",
}

// Portal holds descriptive metadata for a remote data portal
type Portal struct {
	Description string
	SignupURL   string
}

// Portals maps known account names to their portal metadata
var Portals = map[string]Portal{
	"NASA": {
		Description: "NASA Earthdata (MODIS, GPM, GLDAS, CHIRPS mirrors)",
		SignupURL:   "https://urs.earthdata.nasa.gov/users/new",
	},
	"GLEAM": {
		Description: "Global Land Evaporation Amsterdam Model SFTP",
		SignupURL:   "https://www.gleam.eu/#downloads",
	},
	"FTP_WA": {
		Description: "WA+ project FTP server",
		SignupURL:   "https://www.wateraccounting.org",
	},
	"FTP_WA_GUESS": {
		Description: "WA+ project FTP server, guest access",
		SignupURL:   "https://www.wateraccounting.org",
	},
	"MSWEP": {
		Description: "Multi-Source Weighted-Ensemble Precipitation",
		SignupURL:   "http://www.gloh2o.org/mswep/",
	},
	"Copernicus": {
		Description: "Copernicus Climate Data Store",
		SignupURL:   "https://cds.climate.copernicus.eu/user/register",
	},
	"VITO": {
		Description: "VITO PROBA-V / Copernicus Global Land products",
		SignupURL:   "https://land.copernicus.vgt.vito.be/PDF/",
	},
}

// GetPortal returns the metadata for the specified account name
func GetPortal(name string) (Portal, error) {
	p, ok := Portals[name]
	if !ok {
		return Portal{}, fmt.Errorf("unknown account: %s", name)
	}
	return p, nil
}

// IsKnownAccount reports whether name is one of KnownAccounts
func IsKnownAccount(name string) bool {
	_, ok := Portals[name]
	return ok
}

// SortedAccounts returns the known account names sorted alphabetically
func SortedAccounts() []string {
	names := make([]string, 0, len(Portals))
	for name := range Portals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
