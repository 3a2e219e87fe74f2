package businessplan

import "unicode/utf8"

// CharsPerPage is the page size used by EstimatePages.
const CharsPerPage = 500

// EstimatePages approximates the printed length of content as
// ceil(runes/500). It is not a real pagination count.
func EstimatePages(content string) int {
	n := utf8.RuneCountInString(content)
	return (n + CharsPerPage - 1) / CharsPerPage
}

func Summarize(all []Document) Summary {
	sum := Summary{
		Total:    len(all),
		ByStatus: make(map[Status]int, len(Statuses)),
		ByType:   make(map[DocType]int, len(DocTypes)),
	}
	for _, s := range Statuses {
		sum.ByStatus[s] = 0
	}
	for _, d := range all {
		sum.ByStatus[d.Status]++
		sum.ByType[d.Type]++
		sum.TotalPages += d.Pages
	}
	return sum
}
