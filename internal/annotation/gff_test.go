package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:  "basic attributes",
			input: "ID=mRNA_1;Name=geneA;proteinId=P1",
			expected: map[string]string{
				"ID":        "mRNA_1",
				"Name":      "geneA",
				"proteinId": "P1",
			},
		},
		{
			name:  "entry without equals is ignored",
			input: "ID=mRNA_1;broken;Name=geneA",
			expected: map[string]string{
				"ID":   "mRNA_1",
				"Name": "geneA",
			},
		},
		{
			name:  "value containing equals",
			input: "product=hydrolase EC=3.1",
			expected: map[string]string{
				"product": "hydrolase EC=3.1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseAttributes(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParsePhase(t *testing.T) {
	assert.Equal(t, 0, parsePhase("0"))
	assert.Equal(t, 2, parsePhase("2"))
	assert.Equal(t, 0, parsePhase("."))
	assert.Equal(t, 0, parsePhase("x"))
}

func TestParse_GroupsSegmentsByGene(t *testing.T) {
	gff := `##gff-version 3
scaffold_1	JGI	mRNA	1	12	.	+	.	ID=mRNA_1;Name=geneA;proteinId=P1
scaffold_1	JGI	CDS	1	6	.	+	0	Parent=mRNA_1
scaffold_1	JGI	CDS	10	12	.	+	0	Parent=mRNA_1
scaffold_2	JGI	mRNA	1	9	.	-	.	ID=mRNA_2;Name=geneB
scaffold_2	JGI	CDS	1	9	.	-	0	Parent=mRNA_2
`

	res, err := Parse(strings.NewReader(gff))
	require.NoError(t, err)

	require.Len(t, res.SegmentsByGene, 2)
	assert.Equal(t, []string{"mRNA_1", "mRNA_2"}, res.GeneOrder)

	segs := res.SegmentsByGene["mRNA_1"]
	require.Len(t, segs, 2)
	assert.Equal(t, CDSSegment{Scaffold: "scaffold_1", Start: 1, End: 6, Strand: "+", Phase: 0}, segs[0])
	assert.Equal(t, CDSSegment{Scaffold: "scaffold_1", Start: 10, End: 12, Strand: "+", Phase: 0}, segs[1])

	meta := res.Metadata["mRNA_1"]
	assert.Equal(t, "geneA", meta.Name)
	assert.Equal(t, "P1", meta.ProteinID)

	assert.Equal(t, "geneB", res.Metadata["mRNA_2"].Name)
	assert.Empty(t, res.Metadata["mRNA_2"].ProteinID)
}

func TestParse_SkipsCommentsAndShortLines(t *testing.T) {
	gff := "# comment\n\nscaffold_1\tJGI\tCDS\t1\t6\n" +
		"scaffold_1\tJGI\tCDS\t1\t6\t.\t+\t0\tParent=mRNA_1\n"

	res, err := Parse(strings.NewReader(gff))
	require.NoError(t, err)

	assert.Equal(t, 1, res.SkippedLines)
	assert.Len(t, res.SegmentsByGene["mRNA_1"], 1)
}

func TestParse_ParentWithoutPrefixIsExcluded(t *testing.T) {
	gff := "scaffold_1\tJGI\tCDS\t1\t6\t.\t+\t0\tParent=gene_1\n" +
		"scaffold_1\tJGI\tCDS\t10\t12\t.\t+\t0\tID=cds_1\n"

	res, err := Parse(strings.NewReader(gff))
	require.NoError(t, err)

	// Silent exclusion, not an error
	assert.Empty(t, res.SegmentsByGene)
	assert.Zero(t, res.SkippedLines)
}

func TestParse_UnparsableCoordinatesSkipLine(t *testing.T) {
	gff := "scaffold_1\tJGI\tCDS\tone\t6\t.\t+\t0\tParent=mRNA_1\n" +
		"scaffold_1\tJGI\tCDS\t10\t12\t.\t+\t0\tParent=mRNA_1\n"

	res, err := Parse(strings.NewReader(gff))
	require.NoError(t, err)

	assert.Equal(t, 1, res.SkippedLines)
	require.Len(t, res.SegmentsByGene["mRNA_1"], 1)
	assert.Equal(t, int64(10), res.SegmentsByGene["mRNA_1"][0].Start)
}

func TestParse_ProductOnCDSRequiresExistingMetadata(t *testing.T) {
	// mRNA before CDS: product merges into metadata.
	inOrder := `scaffold_1	JGI	mRNA	1	6	.	+	.	ID=mRNA_1;Name=geneA
scaffold_1	JGI	CDS	1	6	.	+	0	Parent=mRNA_1;product=kinase
`
	res, err := Parse(strings.NewReader(inOrder))
	require.NoError(t, err)
	assert.Equal(t, "kinase", res.Metadata["mRNA_1"].Product)

	// CDS before mRNA: the CDS product is dropped silently and the later
	// mRNA record provides whatever metadata it carries.
	outOfOrder := `scaffold_1	JGI	CDS	1	6	.	+	0	Parent=mRNA_1;product=kinase
scaffold_1	JGI	mRNA	1	6	.	+	.	ID=mRNA_1;Name=geneA
`
	res, err = Parse(strings.NewReader(outOfOrder))
	require.NoError(t, err)
	assert.Empty(t, res.Metadata["mRNA_1"].Product)
	assert.Equal(t, "geneA", res.Metadata["mRNA_1"].Name)
	// The segment itself is still collected.
	assert.Len(t, res.SegmentsByGene["mRNA_1"], 1)
}

func TestParse_MRNAWithoutIDIsIgnored(t *testing.T) {
	gff := "scaffold_1\tJGI\tmRNA\t1\t6\t.\t+\t.\tName=geneA\n"

	res, err := Parse(strings.NewReader(gff))
	require.NoError(t, err)
	assert.Empty(t, res.Metadata)
}
