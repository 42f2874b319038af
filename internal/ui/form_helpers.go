package ui

import (
	"strings"

	"github.com/rivo/tview"
)

// getFormItemByLabel finds a form item by its label (supports prefix matching for decorated labels).
func getFormItemByLabel(form *tview.Form, label string) tview.FormItem {
	formItemIndex := form.GetFormItemIndex(label)
	if formItemIndex < 0 {
		for i := 0; i < form.GetFormItemCount(); i++ {
			formItem := form.GetFormItem(i)
			if formItem == nil {
				continue
			}
			if strings.HasPrefix(formItem.GetLabel(), label) {
				formItemIndex = i
				break
			}
		}
	}
	if formItemIndex < 0 {
		panic("Failed to find " + label + " form item index")
	}

	formItem := form.GetFormItem(formItemIndex)
	if formItem == nil {
		panic("Failed to find " + label + " form item")
	}

	return formItem
}

func getAndClearTextFromInputField(form *tview.Form, label string) string {
	formItem := getFormItemByLabel(form, label)

	inputField, ok := formItem.(*tview.InputField)
	if !ok {
		panic("Failed to cast " + label + " input field")
	}

	text := inputField.GetText()
	inputField.SetText("")

	return text
}

func computeFormDialogHeight(form *tview.Form) int {
	itemCount := form.GetFormItemCount()
	totalItemHeight := 0
	for i := 0; i < itemCount; i++ {
		itemHeight := form.GetFormItem(i).GetFieldHeight()
		if itemHeight <= 0 {
			itemHeight = tview.DefaultFormFieldHeight
		}
		totalItemHeight += itemHeight
	}

	paddingBetweenItems := 0
	if itemCount > 1 {
		paddingBetweenItems = itemCount - 1
	}

	buttonRows := 0
	if form.GetButtonCount() > 0 {
		buttonRows = 2
	}

	borderRows := 2
	paddingRows := 2
	totalRows := borderRows + paddingRows + totalItemHeight + paddingBetweenItems + buttonRows
	return min(totalRows, maxDialogViewportHeight)
}

func computeFormDialogWidth(form *tview.Form) int {
	maxLabelWidth := 0
	for i := 0; i < form.GetFormItemCount(); i++ {
		formItem := form.GetFormItem(i)
		if formItem == nil {
			continue
		}
		labelWidth := tview.TaggedStringWidth(formItem.GetLabel())
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}

	return 2 + 2 + maxLabelWidth + 1 + FormFieldWidth
}
