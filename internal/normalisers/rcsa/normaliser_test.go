package rcsa

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/builder"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

const sample = `<?xml version="1.0" encoding="ISO-8859-1"?>
<RCS_A_IMMAT>
  <parution>20150001</parution>
  <dateParution>2015-01-02</dateParution>
  <listeAvis>
    <avis>
      <nojo>A201500010001</nojo>
      <typeAnnonce><annonce/></typeAnnonce>
      <numeroDepartement>75</numeroDepartement>
      <tribunal>Greffe du tribunal de commerce
de Paris</tribunal>
      <numeroAnnonce>1</numeroAnnonce>
      <personnes>
        <personne>
          <personneMorale>
            <numeroImmatriculation>
              <numeroIdentification>123 456 789</numeroIdentification>
              <codeRCS>RCS</codeRCS>
              <nomGreffeImmat>Paris</nomGreffeImmat>
            </numeroImmatriculation>
            <denomination>ACME</denomination>
            <formeJuridique>Société par actions simplifiée</formeJuridique>
            <administration>Président : Jean Dupont Gérant : Marie Martin</administration>
          </personneMorale>
          <capital><montantCapital>1000</montantCapital><devise>EUR</devise></capital>
          <adresse>
            <france>
              <numeroVoie>12</numeroVoie>
              <typeVoie>rue</typeVoie>
              <nomVoie>de la Paix</nomVoie>
              <codePostal>75002</codePostal>
              <ville>Paris</ville>
            </france>
          </adresse>
        </personne>
      </personnes>
      <etablissement>
        <origineFonds>Création d'un fonds de commerce</origineFonds>
        <qualiteEtablissement>Etablissement principal</qualiteEtablissement>
        <activite>Vente de logiciels</activite>
        <enseigne>ACME Store</enseigne>
        <adresse>
          <numeroVoie>12</numeroVoie>
          <typeVoie>rue</typeVoie>
          <nomVoie>de la Paix</nomVoie>
          <codePostal>75002</codePostal>
          <ville>Paris</ville>
        </adresse>
      </etablissement>
      <acte>
        <creation>
          <categorieCreation>Autre immatriculation personne morale</categorieCreation>
          <dateImmatriculation>2014-12-20</dateImmatriculation>
          <dateCommencementActivite>2014-12-15</dateCommencementActivite>
          <descriptif>Création d'une société</descriptif>
        </creation>
      </acte>
    </avis>
    <avis>
      <nojo>A201500010002</nojo>
      <typeAnnonce><rectificatif/></typeAnnonce>
      <numeroDepartement>13</numeroDepartement>
      <tribunal>Greffe du tribunal de commerce de Marseille</tribunal>
      <numeroAnnonce>2</numeroAnnonce>
      <personnes>
        <personne>
          <personnePhysique>
            <nonInscrit>Non inscrit</nonInscrit>
            <nom>Martin</nom>
            <prenom>Marie</prenom>
          </personnePhysique>
        </personne>
      </personnes>
      <precedentProprietairePM>
        <denomination>OLDCO</denomination>
        <numeroImmatriculation>
          <numeroIdentification>987654321</numeroIdentification>
          <codeRCS>RCS</codeRCS>
          <nomGreffeImmat>Marseille</nomGreffeImmat>
        </numeroImmatriculation>
      </precedentProprietairePM>
      <precedentExploitantPP>
        <nom>Durand</nom>
        <prenom>Paul</prenom>
      </precedentExploitantPP>
      <acte>
        <vente>
          <dateEffet>1er mars 2015</dateEffet>
          <journal><titre>La Provence</titre><date>2015-02-20</date></journal>
          <opposition>Au fonds vendu</opposition>
        </vente>
      </acte>
      <parutionAvisPrecedent>
        <nomPublication>BODACC A</nomPublication>
        <numeroParution>20140250</numeroParution>
        <dateParution>28 décembre 2014</dateParution>
        <numeroAnnonce>99</numeroAnnonce>
      </parutionAvisPrecedent>
    </avis>
  </listeAvis>
</RCS_A_IMMAT>`

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return buf
}

func normalise(t *testing.T, xml string) ([]*domain.Record, error) {
	t.Helper()
	doc, err := xmldoc.Parse([]byte(xml))
	require.NoError(t, err)
	tmpl := domain.NewTemplate(&domain.Envelope{Identifier: "20150001", EditionID: "A"}, domain.FormatRCSA, "2015-01-02")
	return New(builder.New(nil)).Normalise(context.Background(), doc, tmpl)
}

func TestNormaliser_Metadata(t *testing.T) {
	n := New(builder.New(nil))
	assert.Equal(t, domain.FormatRCSA, n.Format())
	assert.Equal(t, []string{"RCS_A_IMMAT"}, n.RootElements())
}

func TestNormalise_Creation(t *testing.T) {
	captureLogs(t)

	records, err := normalise(t, sample)
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, 1, r.Identifier)
	assert.Equal(t, "A201500010001", r.UID)
	assert.Nil(t, r.UpdateAction)
	assert.Equal(t, "Greffe du tribunal de commerce de Paris", r.Publisher.Name)
	assert.Equal(t, "Création d'une société", r.Description)
	assert.Equal(t, []domain.Classification{{Scheme: "fr-bodacc", Value: "Autre immatriculation personne morale"}}, r.Classification)

	require.Len(t, r.Subjects, 1)
	c := r.Subjects[0].Company
	require.NotNil(t, c)
	assert.Equal(t, "ACME", c.Name)
	assert.Equal(t, "123456789", c.Registration.Number)
	assert.Len(t, c.Officers, 2)
	require.NotNil(t, c.RegisteredAddress)
	assert.Equal(t, "12 rue de la Paix", c.RegisteredAddress.StreetAddress)

	act := r.About
	require.NotNil(t, act)
	assert.Equal(t, domain.ActCreation, act.Type)
	assert.Equal(t, "2014-12-20", act.DateRegistered)
	assert.Equal(t, "2014-12-15", act.StartDate)
	assert.Empty(t, act.EffectiveDate)
	require.NotNil(t, act.Capital)
	assert.Equal(t, 1000.0, *act.Capital.Amount)
	assert.Equal(t, "EUR", act.Capital.Currency)

	require.Len(t, act.Locations, 1)
	loc := act.Locations[0]
	assert.Equal(t, "ACME Store", loc.Name)
	assert.Equal(t, domain.PropertyPrimary, loc.PropertyType)
	assert.Equal(t, "Paris", loc.Address.Locality)
	assert.Equal(t, "FR", loc.Address.CountryCode)
}

func TestNormalise_SaleCorrection(t *testing.T) {
	captureLogs(t)

	records, err := normalise(t, sample)
	require.NoError(t, err)
	r := records[1]

	require.NotNil(t, r.UpdateAction)
	assert.Equal(t, domain.UpdateCorrection, r.UpdateAction.Type)
	assert.Equal(t, 99, r.UpdateAction.Object.Identifier)

	p := r.Subjects[0].Person
	require.NotNil(t, p)
	assert.True(t, p.Registration.NotRegistered)

	act := r.About
	assert.Equal(t, domain.ActSale, act.Type)
	assert.Equal(t, "2015-03-01", act.EffectiveDate)
	assert.Equal(t, &domain.Journal{Title: "La Provence", Date: "2015-02-20"}, act.Journal)
	assert.Equal(t, "Au fonds vendu", act.Opposition)
	assert.Equal(t, "2014-12-28", act.PreviousPublication.DatePublished)

	require.Len(t, act.PreviousOwners, 1)
	assert.Equal(t, "OLDCO", act.PreviousOwners[0].Company.Name)
	require.Len(t, act.PreviousOperators, 1)
	assert.Equal(t, "Durand", act.PreviousOperators[0].Person.Name.FamilyName)
	assert.Empty(t, r.Classification)
}

func TestNormalise_RecordsDoNotShareState(t *testing.T) {
	captureLogs(t)

	records, err := normalise(t, sample)
	require.NoError(t, err)

	records[0].OtherAttributes.NoticeType = "changed"
	records[0].Issue.Publication.Title = "changed"
	assert.Equal(t, "rectificatif", records[1].OtherAttributes.NoticeType)
	assert.NotEqual(t, "changed", records[1].Issue.Publication.Title)
}

func TestNormalise_SaleWithoutOppositionWarns(t *testing.T) {
	buf := captureLogs(t)

	doc := strings.Replace(sample, "<opposition>Au fonds vendu</opposition>", "", 1)
	records, err := normalise(t, doc)
	require.NoError(t, err)
	assert.Empty(t, records[1].About.Opposition)
	assert.Contains(t, buf.String(), "expected one of opposition or declarationCreance")
}

func TestNormalise_UnknownCategoryWarns(t *testing.T) {
	buf := captureLogs(t)

	doc := strings.Replace(sample, "<categorieCreation>Autre immatriculation personne morale</categorieCreation>", "<categorieCreation>Nouveauté</categorieCreation>", 1)
	records, err := normalise(t, doc)
	require.NoError(t, err)
	assert.Equal(t, "Nouveauté", records[0].Classification[0].Value)
	assert.Contains(t, buf.String(), `unrecognised category "Nouveauté"`)
}

func TestNormalise_MissingActeFailsDocument(t *testing.T) {
	captureLogs(t)

	start := strings.Index(sample, "<acte>\n        <creation>")
	end := strings.Index(sample, "</acte>") + len("</acte>")
	doc := sample[:start] + sample[end:]

	_, err := normalise(t, doc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "A201500010001")
}

func TestNormalise_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := xmldoc.Parse([]byte(sample))
	require.NoError(t, err)
	_, err = New(builder.New(nil)).Normalise(ctx, doc, &domain.Record{})
	assert.ErrorIs(t, err, context.Canceled)
}
