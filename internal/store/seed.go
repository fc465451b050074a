package store

import (
	"github.com/i474232898/arca/internal/support"
	"github.com/i474232898/arca/internal/user"
)

// SeedUsers returns the demo user directory.
func SeedUsers() []user.User {
	return []user.User{
		{ID: 1, Name: "Ana Sophia Araújo", TaxID: "438.150.926-98", Email: "anarajo@hotmail.net", Phone: "71 6379-4026", Age: 58, Role: user.RoleUser, Lat: -23.5575, Lon: -46.6603},
		{ID: 2, Name: "Samuel Plaça", TaxID: "518.302.467-71", Email: "profsamuel.placa@fiap.com.br", Phone: "0900-593-1034", Age: 26, Role: user.RoleAdministrator, Lat: -23.5505, Lon: -46.6333},
		{ID: 3, Name: "Enzo Castro", TaxID: "647.521.980-02", Email: "enzo.castro@gmail.com", Phone: "+55 51 2764 8350", Age: 33, Role: user.RoleUser, Lat: -25.9653, Lon: 32.5892},
		{ID: 4, Name: "Aiko Ribeiro", TaxID: "083.759.162-77", Email: "aiko.ribeiro@gmail.com", Phone: "(011) 91234-5678", Age: 29, Role: user.RoleUser, Lat: 48.8566, Lon: 2.3522},
		{ID: 5, Name: "Pierre Santos", TaxID: "651.394.821-66", Email: "pierre.santos@ymail.com", Phone: "(011) 91235-6789", Age: 34, Role: user.RoleUser, Lat: -12.0464, Lon: -77.0428},
	}
}

// SeedSupportPoints returns the demo support points, all approved.
func SeedSupportPoints() []support.Point {
	return []support.Point{
		{
			ID: 1, Name: "Centro Comunitário Paulista", Neighborhood: "Bela Vista", Street: "Av. Paulista, 1000",
			City: "São Paulo", State: "SP", Country: "Brasil", Capacity: 800, Phone: "+55 11 3333-4444",
			Status: support.StatusApproved, Lat: -23.5689, Lon: -46.6423,
			Notes: "Accepts animals. Accessible to people with disabilities and wheelchair users.",
		},
		{
			ID: 2, Name: "Igreja de São Paulo", Neighborhood: "Pinheiros", Street: "Rua Mourato Coelho",
			City: "São Paulo", State: "SP", Country: "Brasil", Capacity: 300, Phone: "11999998888",
			Status: support.StatusApproved, Lat: -23.5605, Lon: -46.6533,
			Notes: "Does not accept animals.",
		},
		{
			ID: 3, Name: "Escola Primária Maputo", Neighborhood: "Sommerschield", Street: "Av. Eduardo Mondlane",
			City: "Maputo", State: "Maputo", Country: "Moçambique", Capacity: 450, Phone: "+258 21 123 456",
			Status: support.StatusApproved, Lat: -25.9753, Lon: 32.5992,
			Notes: "Does not accept animals.",
		},
		{
			ID: 4, Name: "Centro Cultural Paris 14", Neighborhood: "Montparnasse", Street: "Rue de la Gaité",
			City: "Paris", State: "Île-de-France", Country: "França", Capacity: 250, Phone: "+33 1 42 18 88 88",
			Status: support.StatusApproved, Lat: 48.9566, Lon: 2.4522,
			Notes: "Located in Montparnasse, close to the modern and contemporary art museums.",
		},
		{
			ID: 5, Name: "Estádio Nacional de Lima", Neighborhood: "Santa Beatriz", Street: "Av. Paseo de la República",
			City: "Lima", State: "Lima", Country: "Peru", Capacity: 1000, Phone: "+51 1 555 0000",
			Status: support.StatusApproved, Lat: -12.0564, Lon: -77.0528,
			Notes: "Accessible to people with disabilities.",
		},
	}
}
