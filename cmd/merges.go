package cmd

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jmorganca/minbpe/model"
)

func showMergeTable(bpe *model.BytePairEncoding, w io.Writer) error {
	var data [][]string
	for i, p := range bpe.Merges() {
		id := int32(256 + i)

		var row []string
		for _, tok := range []int32{p.Left, p.Right, id} {
			token, err := bpe.RenderToken(tok)
			if err != nil {
				return err
			}
			row = append(row, "["+token+"]")
		}

		data = append(data, append([]string{strconv.Itoa(int(id))}, row...))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "LEFT", "RIGHT", "TOKEN"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}
