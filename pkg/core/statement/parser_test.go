package statement

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"
)

func TestParseCSVSkipsMalformedDate(t *testing.T) {
	// 3 rows, one malformed date: partial success, not failure.
	data := []byte("date,description,amount\n" +
		"2024-01-01,Grocery store,-10.50\n" +
		"baddate,Broken row,-5.00\n" +
		"2024-01-03,Salary,1000.00\n")

	p := NewParser()
	result, err := p.Parse(data, "january.csv", "")
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(result.Transactions) != 2 {
		t.Errorf("expected 2 parsed, got %d", len(result.Transactions))
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", result.Skipped)
	}
}

func TestParseCSVRussianHeaders(t *testing.T) {
	data := []byte("Дата;Назначение платежа;Сумма\n" +
		"15.02.2024;ПЯТЕРОЧКА 12345;-450,70\n" +
		"16.02.2024;Зарплата за январь;50 000,00\n")

	p := NewParser()
	result, err := p.Parse(data, "vypiska.csv", "tinkoff")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}

	tx := result.Transactions[0]
	if tx.Amount != -450.70 {
		t.Errorf("expected -450.70, got %v", tx.Amount)
	}
	if tx.Date != time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected date %v", tx.Date)
	}
	if tx.Bank != "tinkoff" {
		t.Errorf("expected declared bank tinkoff, got %s", tx.Bank)
	}

	if result.Transactions[1].Amount != 50000.00 {
		t.Errorf("thousands separator not handled: %v", result.Transactions[1].Amount)
	}
}

func TestParseSberbankLayout(t *testing.T) {
	data := []byte("Выписка по счету\n" +
		"statement_unid\tdate_oper\tsum_rur\ttext70\n" +
		"1\t10.03.2024\t-1 200,00\tМАГНИТ ММ ВОСХОД\n" +
		"2\t11.03.2024\t0,00\tслужебная запись\n" +
		"3\t12.03.2024\t35000,00\tЗАЧИСЛЕНИЕ ЗАРПЛАТЫ\n")

	p := NewParser()
	result, err := p.Parse(data, "sber_march.txt", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Bank != "sberbank" {
		t.Errorf("expected sberbank, got %s", result.Bank)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions (zero-sum row skipped), got %d", len(result.Transactions))
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", result.Skipped)
	}
	if result.Transactions[0].Amount != -1200.00 {
		t.Errorf("expected -1200.00, got %v", result.Transactions[0].Amount)
	}
}

func TestParsePlainTextLines(t *testing.T) {
	data := []byte("Выписка за февраль\n" +
		"01.02.2024 ЯНДЕКС.ТАКСИ -450,00\n" +
		"05/02/2024 Кафе Утро -320,50\n" +
		"строка без данных\n")

	p := NewParser()
	result, err := p.Parse(data, "raiffeisen.txt", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	// header + junk line counted as skipped
	if result.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", result.Skipped)
	}
	if result.Bank != "raiffeisen" {
		t.Errorf("bank should fall back to file stem, got %s", result.Bank)
	}
}

func TestParseCP1251Encoding(t *testing.T) {
	utf8Data := "Дата;Описание;Сумма\n20.04.2024;АПТЕКА ГОРЗДРАВ;-780,00\n"
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(utf8Data))
	if err != nil {
		t.Fatal(err)
	}

	p := NewParser()
	result, err := p.Parse(encoded, "vypiska_cp1251.csv", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Description != "АПТЕКА ГОРЗДРАВ" {
		t.Errorf("cp1251 description mangled: %q", result.Transactions[0].Description)
	}
}

func TestParseWhollyUnreadableFile(t *testing.T) {
	p := NewParser()

	_, err := p.Parse([]byte("ничего похожего на выписку\nвообще ничего\n"), "junk.txt", "")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}

	_, err = p.Parse(nil, "empty.txt", "")
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError for empty file, got %v", err)
	}
}

func TestParseAmountFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"-450,70", -450.70, true},
		{"1 234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"+100.00", 100.00, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := parseAmount(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("parseAmount(%q) = %v,%v; want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
