package models

// CountryName maps an ISO country code to the name used in search queries.
// Unknown codes pass through unchanged.
func CountryName(code string) string {
	switch code {
	case "IN":
		return "India"
	case "US":
		return "USA"
	case "GB":
		return "UK"
	default:
		return code
	}
}
