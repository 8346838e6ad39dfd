package gsheets

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client клиент для работы с Google Sheets
type Client struct {
	sheets   *sheets.Service
	drive    *drive.Service
	folderID string
}

// NewClient создаёт клиент с сервисным аккаунтом из JSON файла
func NewClient(ctx context.Context, credentialsPath, folderID string) (*Client, error) {
	// Читаем credentials
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать credentials: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data,
		sheets.SpreadsheetsScope,
		drive.DriveFileScope,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	return NewClientWithOptions(ctx, folderID, option.WithHTTPClient(config.Client(ctx)))
}

// NewClientWithOptions создаёт клиент с произвольными опциями (endpoint, http клиент)
func NewClientWithOptions(ctx context.Context, folderID string, opts ...option.ClientOption) (*Client, error) {
	sheetsSrv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Sheets сервиса: %w", err)
	}

	driveSrv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Drive сервиса: %w", err)
	}

	return &Client{
		sheets:   sheetsSrv,
		drive:    driveSrv,
		folderID: folderID,
	}, nil
}

// CreateSpreadsheet создаёт таблицу с одним листом и кладёт её в папку Drive
func (c *Client) CreateSpreadsheet(ctx context.Context, title, sheetName string) (string, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: sheetName,
					Index: 0,
				},
			},
		},
	}

	created, err := c.sheets.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ошибка создания таблицы: %w", err)
	}

	if c.folderID != "" {
		_, err = c.drive.Files.Update(created.SpreadsheetId, nil).
			AddParents(c.folderID).
			Context(ctx).
			Do()
		if err != nil {
			log.Warnf("не удалось переместить таблицу в папку: %v", err)
		}
	}

	log.Infof("создана Google таблица %s: %s", title, GetSpreadsheetURL(created.SpreadsheetId))
	return created.SpreadsheetId, nil
}

// hasSheet проверяет, есть ли лист в таблице
func (c *Client) hasSheet(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	spreadsheet, err := c.sheets.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("ошибка получения структуры: %w", err)
	}
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil && s.Properties.Title == sheetName {
			return true, nil
		}
	}
	return false, nil
}

// addSheet добавляет лист
func (c *Client) addSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheetName},
				},
			},
		},
	}
	_, err := c.sheets.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", sheetName, err)
	}
	return nil
}

// readRange читает значения диапазона
func (c *Client) readRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения таблицы: %w", err)
	}
	return resp.Values, nil
}

// writeRows записывает строки начиная с ячейки. RAW, чтобы дата осталась текстом.
func (c *Client) writeRows(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}
	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// clearRange очищает диапазон
func (c *Client) clearRange(ctx context.Context, spreadsheetID, clearRange string) error {
	_, err := c.sheets.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

// GetSpreadsheetURL возвращает URL таблицы
func GetSpreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", spreadsheetID)
}
