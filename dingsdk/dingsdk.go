package dingsdk

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

type DingContent struct {
	Content string `json:"content"`
}

type DingAt struct {
	IsAtAll bool `json:"isAtAll"`
}

type DingNotify struct {
	MsgType string      `json:"msgtype"`
	Text    DingContent `json:"text"`
	At      DingAt      `json:"at"`
}

type DingResult struct {
	ErrCode int64  `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// DingSdk pushes operational alerts to a ding webhook.
type DingSdk struct {
	url    string
	client *http.Client
}

func NewDingSdk(url string) *DingSdk {
	return &DingSdk{
		url:    url,
		client: &http.Client{Timeout: time.Second * 10},
	}
}

func (sdk *DingSdk) Notify(notify *DingNotify) (*DingResult, error) {
	requestJson, _ := json.Marshal(notify)
	req, err := http.NewRequest("POST", sdk.url, strings.NewReader(string(requestJson)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("Content-Type", "application/json")
	resp, err := sdk.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("response status code: %d", resp.StatusCode)
	}
	respBody, _ := ioutil.ReadAll(resp.Body)
	dingResult := new(DingResult)
	err = json.Unmarshal(respBody, dingResult)
	if err != nil {
		return nil, err
	}
	if dingResult.ErrCode != 0 || dingResult.ErrMsg != "ok" {
		return nil, fmt.Errorf("code: %d, err: %s", dingResult.ErrCode, dingResult.ErrMsg)
	}
	return dingResult, nil
}

// NotifyText is the plain text shortcut every caller actually uses.
func (sdk *DingSdk) NotifyText(text string) error {
	_, err := sdk.Notify(&DingNotify{
		MsgType: "text",
		Text:    DingContent{Content: text},
		At:      DingAt{IsAtAll: false},
	})
	return err
}
