package live

// clientScript connects to the socket named by the root's data-live
// attribute, forwards delegated events and swaps in pushed markup.
const clientScript = `
(function() {
    'use strict';

    var root = document.getElementById('hyper-root');
    if (!root) return;

    var events = ['click', 'input', 'change', 'submit', 'keydown'];
    var ws = null;
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + root.dataset.live);

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'render') {
                root.innerHTML = msg.html;
            } else if (msg.type === 'error') {
                console.error('[hyper]', msg.code || '', msg.error);
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };
    }

    events.forEach(function(type) {
        root.addEventListener(type, function(e) {
            var el = e.target.closest('[data-hid]');
            if (!el || !ws || ws.readyState !== WebSocket.OPEN) return;
            if (type === 'submit') e.preventDefault();
            var value = e.target.value;
            if (type === 'keydown') value = e.key;
            ws.send(JSON.stringify({hid: el.dataset.hid, event: type, value: value}));
        });
    });

    connect();
})();
`
