package services

// このパッケージの予測エンジンは以下のファイルに分割されています：
//
// - dataset_service.go: イベントローダー（生の表データの検証・変換）
// - forecast_core.go: 集計関数（日別・時間帯別・曜日別・種別・月別）
// - forecast_workload.go: カウンセラー業務量とキャパシティ計算
// - forecast_density.go: 時間帯分布の正規分布フィット（表示専用）
// - report_service.go: 分析レポートの生成とインメモリ登録
//
// すべての集計・計算はロード済みイベント集合に対する純粋関数であり、
// 内部状態を変更しません。設定を変えた再計算はデータの再パースなしで行えます。
