package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockflow-api/pkg/textutil"
)

// Tipos de fila aceptados (primera columna). Se aceptan nombres en francés y en inglés.
const (
	kindCategory = "category"
	kindBrand    = "brand"
	kindModel    = "model"
	kindSupplier = "supplier"
	kindLocation = "location"
	kindPartner  = "partner"
)

var kindAliases = map[string]string{
	"category": kindCategory, "categorie": kindCategory,
	"brand": kindBrand, "marque": kindBrand,
	"model": kindModel, "modele": kindModel,
	"supplier": kindSupplier, "fournisseur": kindSupplier,
	"location": kindLocation, "emplacement": kindLocation,
	"partner": kindPartner, "partenaire": kindPartner,
}

// record fila del CSV ya normalizada.
//
//	model;Nombre;Marca;Categoría
//	partner;Nombre;Contacto;Email;Teléfono
//	<otro>;Nombre
type record struct {
	Line   int
	Kind   string
	Name   string
	Extras []string
}

// parseCSV lee filas "tipo;nombre;..." separadas por ';'. Líneas vacías y las que
// empiezan por '#' se ignoran. Archivos que no son UTF-8 se leen como ISO-8859-1.
func parseCSV(data []byte) ([]record, error) {
	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(fields) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos tipo y nombre", line)
		}
		kind, ok := kindAliases[textutil.Fold(strings.TrimSpace(fields[0]))]
		if !ok {
			return nil, fmt.Errorf("línea %d: tipo desconocido %q", line, fields[0])
		}
		rec := record{Line: line, Kind: kind, Name: strings.TrimSpace(fields[1])}
		for _, f := range fields[2:] {
			rec.Extras = append(rec.Extras, strings.TrimSpace(f))
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		if kind == kindModel && len(rec.Extras) < 2 {
			return nil, fmt.Errorf("línea %d: un modelo requiere marca y categoría", line)
		}
		if kind == kindPartner && len(rec.Extras) < 3 {
			return nil, fmt.Errorf("línea %d: un partner requiere contacto, email y teléfono", line)
		}
		out = append(out, rec)
	}
	return out, nil
}
