package rcsb

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

const sample = `<RCS-B_REDIFF>
  <parution>20150010</parution>
  <dateParution>2015/01/14</dateParution>
  <listeAvis>
    <avis>
      <nojo>B201500100001</nojo>
      <typeAnnonce><annonce/></typeAnnonce>
      <numeroDepartement>69</numeroDepartement>
      <tribunal>Greffe du tribunal de commerce de Lyon</tribunal>
      <numeroAnnonce>1</numeroAnnonce>
      <personnes>
        <personne>
          <personneMorale>
            <numeroImmatriculation>
              <numeroIdentification>111 222 333</numeroIdentification>
              <codeRCS>RCS</codeRCS>
              <nomGreffeImmat>Lyon</nomGreffeImmat>
            </numeroImmatriculation>
            <denomination>ACME</denomination>
            <adresseSiegeSocial>
              <france><nomVoie>Quai Perrache</nomVoie><codePostal>69002</codePostal><ville>Lyon</ville></france>
            </adresseSiegeSocial>
          </personneMorale>
          <capital><capitalVariable>22000, 00 EUROS</capitalVariable></capital>
        </personne>
      </personnes>
      <modificationsGenerales>
        <descriptif>Modification du capital</descriptif>
        <dateEffet>15 janvier 2015</dateEffet>
      </modificationsGenerales>
    </avis>
    <avis>
      <nojo>B201500100002</nojo>
      <typeAnnonce><annonce/></typeAnnonce>
      <numeroAnnonce>2</numeroAnnonce>
      <personnes>
        <personne>
          <personnePhysique>
            <numeroImmatriculation>
              <numeroIdentification>444555666</numeroIdentification>
              <codeRCS>RCS</codeRCS>
              <nomGreffeImmat>Lyon</nomGreffeImmat>
            </numeroImmatriculation>
            <nom>Dupont</nom>
            <prenom>Jean</prenom>
          </personnePhysique>
        </personne>
      </personnes>
      <radiationAuRCS>
        <radiationPP><dateCessationActivitePP>31 décembre 2014</dateCessationActivitePP></radiationPP>
        <commentaire>Radiation d'office</commentaire>
      </radiationAuRCS>
    </avis>
  </listeAvis>
</RCS-B_REDIFF>`

func normalise(t *testing.T, xml string) ([]*domain.Record, error) {
	t.Helper()
	doc, err := xmldoc.Parse([]byte(xml))
	require.NoError(t, err)
	tmpl := domain.NewTemplate(&domain.Envelope{Identifier: "20150010", EditionID: "B"}, domain.FormatRCSB, "2015-01-14")
	return New(builder.New(nil)).Normalise(context.Background(), doc, tmpl)
}

func TestNormaliser_Metadata(t *testing.T) {
	n := New(builder.New(nil))
	assert.Equal(t, domain.FormatRCSB, n.Format())
	assert.Equal(t, []string{"RCS-B_REDIFF", "RCS_B_REDIFF"}, n.RootElements())
}

func TestNormalise(t *testing.T) {
	records, err := normalise(t, sample)
	require.NoError(t, err)
	require.Len(t, records, 2)

	mod := records[0]
	assert.Equal(t, domain.ActGeneralModification, mod.About.Type)
	assert.Equal(t, "2015-01-15", mod.About.EffectiveDate)
	assert.Equal(t, "Modification du capital", mod.Description)
	require.NotNil(t, mod.About.Capital)
	assert.Equal(t, 22000.0, *mod.About.Capital.Amount)
	assert.Equal(t, "EUR", mod.About.Capital.Currency)
	c := mod.Subjects[0].Company
	assert.Equal(t, "111222333", c.Registration.Number)
	assert.Equal(t, "Lyon", c.RegisteredAddress.Locality)

	off := records[1]
	assert.Equal(t, domain.ActStruckOff, off.About.Type)
	assert.Equal(t, "2014-12-31", off.About.DateCeased)
	assert.Equal(t, "Radiation d'office", off.About.Comment)
	assert.Equal(t, "Dupont", off.Subjects[0].Person.Name.FamilyName)
}

func TestNormalise_LegacyRoot(t *testing.T) {
	doc := strings.ReplaceAll(sample, "RCS-B_REDIFF", "RCS_B_REDIFF")
	records, err := normalise(t, doc)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestNormalise_RegistrationRequired(t *testing.T) {
	start := strings.Index(sample, "<numeroImmatriculation>")
	end := strings.Index(sample, "</numeroImmatriculation>") + len("</numeroImmatriculation>")
	doc := sample[:start] + sample[end:]

	_, err := normalise(t, doc)
	assert.ErrorIs(t, err, domain.ErrContractViolation)
}

func TestNormalise_BothActsWarns(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	doc := strings.Replace(sample, "</modificationsGenerales>", "</modificationsGenerales><radiationAuRCS><radiationPM/></radiationAuRCS>", 1)
	records, err := normalise(t, doc)
	require.NoError(t, err)
	assert.Equal(t, domain.ActGeneralModification, records[0].About.Type)
	assert.Contains(t, buf.String(), "got both")
}

func TestNormalise_NoAct(t *testing.T) {
	start := strings.Index(sample, "<radiationAuRCS>")
	end := strings.Index(sample, "</radiationAuRCS>") + len("</radiationAuRCS>")
	_, err := normalise(t, sample[:start]+sample[end:])
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
