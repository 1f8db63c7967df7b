package advisory

var messages = map[string]string{
	"name.required":          "名前が入力されていません",
	"name.surrounding_space": "名前の先頭または末尾にスペースを含めないでください",
	"name.too_long":          "名前は20文字以内で入力してください",
	"name.charset":           "名前は日本語で入力してください",

	"kana.required":          "ふりがなが入力されていません",
	"kana.surrounding_space": "ふりがなの先頭または末尾にスペースを含めないでください",
	"kana.too_long":          "ふりがなは20文字以内で入力してください",
	"kana.charset":           "ひらがなで入力してください",

	"birth_date.required":   "生年月日をすべて選択してください",
	"birth_date.year_range": "生年月日の年は%d年から%d年の間で選択してください",
	"birth_date.invalid":    "生年月日が正しくありません",
	"birth_date.future":     "未来の日付は選択できません",

	"postal_code.required":          "郵便番号が入力されていません",
	"postal_code.surrounding_space": "先頭または末尾にスペースを含めないでください",
	"postal_code.hyphen":            "「- (ハイフン)」を記入してください　　(例：XXX-XXXX)",
	"postal_code.format":            "郵便番号は「XXX-XXXX」の形式で入力してください",

	"address.surrounding_space":   "住所欄の先頭または末尾にスペースを含めないでください",
	"address.required":            "住所(都道府県もしくは市区町村・番地)が入力されていません",
	"address.prefecture_too_long": "都道府県は10文字以内で入力してください",
	"address.city_too_long":       "市区町村・番地もしくは建物名は50文字以内で入力してください",

	"tel.required":          "電話番号が入力されていません",
	"tel.surrounding_space": "先頭または末尾にスペースを含めないでください",
	"tel.format":            "電話番号は12~13桁（例：XXX-XXXX-XXXX）で正しく入力してください",

	"email.required":          "メールアドレスが入力されていません",
	"email.surrounding_space": "先頭または末尾にスペースを含めないでください",
	"email.format":            "有効なメールアドレスを入力してください",

	"document.too_large":        "2MBを超えるファイルはアップロードできません",
	"document.unsupported_type": "ファイル形式は PNG,JPEG,jpg のいずれかのみ許可されています",
}

func message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return code
}
