package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	env := &Envelope{
		Format:      "PCL",
		Identifier:  "20150001",
		EditionID:   "A",
		SourceURL:   "https://example.org/PCL_BXA20150001.taz",
		RetrievedAt: "2015-01-03T10:00:00Z",
	}

	r := NewTemplate(env, FormatPCL, "2015-01-02")

	assert.Equal(t, "20150001", r.Issue.Identifier)
	assert.Equal(t, "fr", r.Issue.Publication.JurisdictionCode)
	assert.Equal(t, "2015-01-02", r.DatePublished)
	assert.Equal(t, env.RetrievedAt, r.SampleDate)
	assert.Equal(t, env.RetrievedAt, r.RetrievedAt)
	assert.Equal(t, ConfidenceHigh, r.Confidence)
	assert.Equal(t, FormatPCL, r.OtherAttributes.Format)
}

func TestRecord_CloneIsDeep(t *testing.T) {
	amount := 1000.0
	orig := &Record{
		UID:          "A1",
		Publisher:    &Court{Name: "Paris"},
		UpdateAction: &UpdateAction{Type: UpdateCorrection, Object: &AnnouncementRef{Identifier: 3}},
		Subjects: []Entity{{Company: &Company{
			Name:     "EXEMPLE",
			Officers: []Officer{{Role: "Gérant", Name: "Dupont"}},
			Holder:   Holder{Registration: &Registration{Number: "123"}, RegisteredAddress: &Address{Locality: "Paris"}},
		}}},
		About: &Act{
			Type:      ActSale,
			Capital:   &Capital{Amount: &amount},
			Locations: []Location{{Address: &Address{Locality: "Lyon"}}},
		},
		Classification: []Classification{{Scheme: ClassificationScheme, Value: "x"}},
	}

	c := orig.Clone()
	c.Publisher.Name = "Lyon"
	c.UpdateAction.Object.Identifier = 4
	c.Subjects[0].Company.Officers[0].Name = "Martin"
	c.Subjects[0].Company.Registration.Number = "456"
	c.Subjects[0].Company.RegisteredAddress.Locality = "Nice"
	*c.About.Capital.Amount = 2000
	c.About.Locations[0].Address.Locality = "Nantes"
	c.Classification[0].Value = "y"

	assert.Equal(t, "Paris", orig.Publisher.Name)
	assert.Equal(t, 3, orig.UpdateAction.Object.Identifier)
	assert.Equal(t, "Dupont", orig.Subjects[0].Company.Officers[0].Name)
	assert.Equal(t, "123", orig.Subjects[0].Company.Registration.Number)
	assert.Equal(t, "Paris", orig.Subjects[0].Company.RegisteredAddress.Locality)
	assert.Equal(t, 1000.0, *orig.About.Capital.Amount)
	assert.Equal(t, "Lyon", orig.About.Locations[0].Address.Locality)
	assert.Equal(t, "x", orig.Classification[0].Value)

	assert.Nil(t, (*Record)(nil).Clone())
}

func TestEntity_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Entity{Person: &Person{Name: PersonName{FamilyName: "Dupont"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity_type":"person","name":{"family_name":"Dupont"}}`, string(data))

	data, err = json.Marshal(Entity{Company: &Company{Name: "EXEMPLE"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity_type":"company","name":"EXEMPLE"}`, string(data))

	data, err = json.Marshal(Entity{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestEntity_Common(t *testing.T) {
	e := Entity{Company: &Company{Holder: Holder{Activity: "vente"}}}
	assert.Equal(t, EntityCompany, e.Type())
	assert.Equal(t, "vente", e.Common().Activity)

	p := Entity{Person: &Person{}}
	assert.Equal(t, EntityPerson, p.Type())
	assert.NotNil(t, p.Common())

	assert.Nil(t, Entity{}.Common())
}

func TestRunStats(t *testing.T) {
	s := RunStats{Lines: 1, Documents: 1, Records: 3}
	s.Add(RunStats{Lines: 2, Failed: 1, Skipped: 1})

	assert.Equal(t, RunStats{Lines: 3, Documents: 1, Records: 3, Skipped: 1, Failed: 1}, s)
	assert.Equal(t, "lines=3 documents=1 records=3 skipped=1 failed=1", s.String())
}

func TestEmission_Archived(t *testing.T) {
	e := &Emission{
		Record: &Record{
			UID:             "A1",
			Identifier:      7,
			Issue:           Issue{Identifier: "20150001"},
			OtherAttributes: OtherAttributes{Format: FormatRCSA},
		},
		Line:        []byte(`{"uid":"A1"}`),
		EnvelopeUID: "env",
		RunID:       "run",
	}

	assert.Equal(t, ArchivedRecord{
		UID:             "A1",
		IssueIdentifier: "20150001",
		Identifier:      7,
		Format:          FormatRCSA,
		EnvelopeUID:     "env",
		RunID:           "run",
		Line:            `{"uid":"A1"}`,
	}, e.Archived())
}
